package catalog

import (
	"context"
	"io"

	"almadina/models"

	"golang.org/x/net/html"
)

// CatalogService is the public operation surface of the catalog.
type CatalogService interface {
	Load(ctx context.Context) error
	RenderServices()
	BindContact()
	UpdateServicePrice(id models.ServiceID, price float64) bool
	AddService(svc models.Service) error
	RemoveService(id models.ServiceID) int
	Document() (models.CatalogDocument, bool)
	WritePage(w io.Writer) error
	Loaded() bool
	RenderCount() int
}

// CatalogSource fetches and decodes the catalog document.
type CatalogSource interface {
	Fetch(ctx context.Context) (*models.CatalogDocument, error)
}

// Surface is the page the catalog renders into.
type Surface interface {
	ReplaceChildren(id string, nodes []*html.Node) bool
	RewriteLinks(fragment, href string) int
	Render(w io.Writer) error
}

// CardBuilder turns services into card elements.
type CardBuilder interface {
	Cards(services []models.Service) ([]*html.Node, error)
}

// RenderPublisher announces completed renders.
type RenderPublisher interface {
	PublishRender(ctx context.Context, event models.RenderEvent) error
}
