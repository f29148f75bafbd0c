// models/catalog.go
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CatalogDocument is the payload served as services.json.
type CatalogDocument struct {
	Services []Service `json:"services"`
	Contact  *Contact  `json:"contact,omitempty"`
}

// Service is one sellable offering shown as a card.
type Service struct {
	ID           ServiceID `json:"id"`
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency" binding:"required"`
	VehicleTypes []string  `json:"vehicleTypes"`
	Featured     bool      `json:"featured"`
	BgColor      string    `json:"bgColor"`   // e.g. "bg-blue-100"
	Icon         string    `json:"icon"`      // e.g. "fas fa-oil-can"
	IconColor    string    `json:"iconColor"` // e.g. "text-blue-600"
}

// Contact carries the numbers bound into messaging and dial links.
type Contact struct {
	WhatsApp string `json:"whatsapp"`
	Phone    string `json:"phone"`
}

// RenderEvent describes one completed rebuild of the services container.
type RenderEvent struct {
	Revision   int       `json:"revision"`
	Cards      int       `json:"cards"`
	RenderedAt time.Time `json:"renderedAt"`
}

// PriceLabel is the "{price} {currency}" line of a card. Prices are not
// range-checked on update, so non-finite values get a readable label.
func (s Service) PriceLabel() string {
	var price string
	switch {
	case math.IsNaN(s.Price):
		price = "NaN"
	case math.IsInf(s.Price, 1):
		price = "Infinity"
	case math.IsInf(s.Price, -1):
		price = "-Infinity"
	default:
		price = strconv.FormatFloat(s.Price, 'f', -1, 64)
	}
	return price + " " + s.Currency
}

// VehicleLabel joins the vehicle types for display.
func (s Service) VehicleLabel() string {
	return strings.Join(s.VehicleTypes, ", ")
}

// Validate checks that the fields a card needs are present.
func (s Service) Validate() []string {
	var problems []string
	if s.ID.IsZero() {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(s.Currency) == "" {
		problems = append(problems, "currency is required")
	}
	if math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
		problems = append(problems, "price must be a finite number")
	}
	if s.VehicleTypes == nil {
		problems = append(problems, "vehicleTypes is required")
	}
	return problems
}

// Clone returns a copy that shares no slices with the receiver.
func (d CatalogDocument) Clone() CatalogDocument {
	out := CatalogDocument{Services: make([]Service, len(d.Services))}
	for i, svc := range d.Services {
		svc.VehicleTypes = append([]string(nil), svc.VehicleTypes...)
		out.Services[i] = svc
	}
	if d.Contact != nil {
		c := *d.Contact
		out.Contact = &c
	}
	return out
}
