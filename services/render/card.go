// File: services/render/card.go
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"almadina/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	cardClass     = "bg-white rounded-xl shadow-lg hover:shadow-xl transition-shadow duration-300 border border-gray-100"
	featuredClass = "md:col-span-2 lg:col-span-3"

	DefaultCacheSize = 256
)

var cardTemplate = template.Must(template.New("card").Parse(
	`<div class="{{.Class}}" data-service-id="{{.ID}}">` +
		`<div class="p-6">` +
		`<div class="flex items-center mb-4 space-x-reverse">` +
		`<div class="{{.BgColor}} p-3 rounded-lg"><i class="{{.Icon}} text-2xl {{.IconColor}}"></i></div>` +
		`<h3 class="text-xl font-bold text-gray-800 mr-4 font-pashto">{{.Name}}</h3>` +
		`</div>` +
		`<p class="text-gray-600 mb-4 font-pashto">{{.Description}}</p>` +
		`<div class="flex justify-between items-center">` +
		`<span class="text-2xl font-bold text-primary">{{.Price}}</span>` +
		`<span class="text-sm text-gray-500 font-pashto">{{.VehicleTypes}}</span>` +
		`</div>` +
		`</div>` +
		`</div>`))

type cardView struct {
	Class        string
	ID           string
	BgColor      string
	Icon         string
	IconColor    string
	Name         string
	Description  string
	Price        string
	VehicleTypes string
}

// CardRenderer turns a Service into card markup. Identical services give
// identical markup, so results are memoised by cardKey.
type CardRenderer struct {
	cache *lru.Cache[string, string]
}

// NewCardRenderer creates a renderer whose memo holds up to size cards.
func NewCardRenderer(size int) (*CardRenderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("render: failed to create card cache: %w", err)
	}
	return &CardRenderer{cache: cache}, nil
}

// Markup returns the escaped card markup for svc.
func (r *CardRenderer) Markup(svc models.Service) (string, error) {
	key := cardKey(svc)
	if markup, ok := r.cache.Get(key); ok {
		return markup, nil
	}

	class := cardClass
	if svc.Featured {
		class += " " + featuredClass
	}
	var buf bytes.Buffer
	err := cardTemplate.Execute(&buf, cardView{
		Class:        class,
		ID:           svc.ID.String(),
		BgColor:      svc.BgColor,
		Icon:         svc.Icon,
		IconColor:    svc.IconColor,
		Name:         svc.Name,
		Description:  svc.Description,
		Price:        svc.PriceLabel(),
		VehicleTypes: svc.VehicleLabel(),
	})
	if err != nil {
		return "", fmt.Errorf("render: failed to execute card template for %s: %w", svc.ID, err)
	}

	markup := buf.String()
	r.cache.Add(key, markup)
	return markup, nil
}

// cardKey lists every field the card shows. Strings are quoted so no two
// services share a key, and strconv spells NaN and ±Inf prices.
func cardKey(svc models.Service) string {
	return fmt.Sprintf("%t %q %q %q %s %q %q %t %q %q %q",
		svc.ID.IsNumeric(), svc.ID.String(),
		svc.Name, svc.Description,
		strconv.FormatFloat(svc.Price, 'g', -1, 64), svc.Currency,
		svc.VehicleTypes, svc.Featured,
		svc.BgColor, svc.Icon, svc.IconColor)
}

// Nodes returns a freshly parsed card element for svc. Every call yields a
// new tree so the result can be attached to any document.
func (r *CardRenderer) Nodes(svc models.Service) ([]*html.Node, error) {
	markup, err := r.Markup(svc)
	if err != nil {
		return nil, err
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, fmt.Errorf("render: failed to parse card for %s: %w", svc.ID, err)
	}
	return nodes, nil
}

// Cards renders every service in order.
func (r *CardRenderer) Cards(services []models.Service) ([]*html.Node, error) {
	nodes := make([]*html.Node, 0, len(services))
	for _, svc := range services {
		card, err := r.Nodes(svc)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, card...)
	}
	return nodes, nil
}

// Cached reports how many distinct cards are memoised.
func (r *CardRenderer) Cached() int {
	return r.cache.Len()
}
