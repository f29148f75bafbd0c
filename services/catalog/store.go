// File: services/catalog/store.go
package catalog

import (
	"context"
	"io"
	"sync"
	"time"

	"almadina/models"

	"go.uber.org/zap"
)

const (
	DefaultContainerID = "services-container"

	publishTimeout = 2 * time.Second
)

var _ CatalogService = (*DefaultCatalogStore)(nil)

// DefaultCatalogStore holds the catalog loaded at startup and keeps the
// page surface in step with it. Every mutation rebuilds the services
// container from scratch. One mutex covers the catalog and the surface, so
// each read-modify-render sequence is atomic.
type DefaultCatalogStore struct {
	Source      CatalogSource
	Surface     Surface
	Cards       CardBuilder
	Contact     ContactBinder
	Publisher   RenderPublisher
	Logger      *zap.Logger
	ContainerID string

	mu      sync.Mutex
	catalog *models.CatalogDocument
	renders int
}

// NewCatalogStore wires a store with the default container, binder and a
// no-op publisher.
func NewCatalogStore(source CatalogSource, surface Surface, cards CardBuilder, logger *zap.Logger) *DefaultCatalogStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCatalogStore{
		Source:      source,
		Surface:     surface,
		Cards:       cards,
		Contact:     NewContactBinder(""),
		Publisher:   NopRenderPublisher{},
		Logger:      logger,
		ContainerID: DefaultContainerID,
	}
}

// Load fetches the catalog once. On success the services are rendered and
// the contact links bound, in that order. On failure the catalog stays
// absent and the page keeps whatever empty state it was built with.
func (s *DefaultCatalogStore) Load(ctx context.Context) error {
	doc, err := s.Source.Fetch(ctx)
	if err != nil {
		s.Logger.Error("Load: failed to load catalog", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.catalog = doc
	event := s.renderServicesLocked()
	s.bindContactLocked()
	s.mu.Unlock()

	s.publish(event)
	s.Logger.Info("Load: catalog loaded", zap.Int("services", len(doc.Services)))
	return nil
}

// RenderServices rebuilds the services container from the current catalog.
func (s *DefaultCatalogStore) RenderServices() {
	s.mu.Lock()
	event := s.renderServicesLocked()
	s.mu.Unlock()
	s.publish(event)
}

// BindContact rewrites messaging and dial links from the catalog contact.
func (s *DefaultCatalogStore) BindContact() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindContactLocked()
}

// UpdateServicePrice sets the price of the first service with the given id.
// It reports whether a service matched.
func (s *DefaultCatalogStore) UpdateServicePrice(id models.ServiceID, price float64) bool {
	s.mu.Lock()
	if s.catalog == nil {
		s.mu.Unlock()
		return false
	}
	idx := -1
	for i := range s.catalog.Services {
		if s.catalog.Services[i].ID.Equal(id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	svc := &s.catalog.Services[idx]
	svc.Price = price
	name, currency := svc.Name, svc.Currency
	event := s.renderAllLocked()
	s.mu.Unlock()

	s.publish(event)
	s.Logger.Info("UpdateServicePrice: price updated",
		zap.String("serviceID", id.String()),
		zap.String("name", name),
		zap.Float64("price", price),
		zap.String("currency", currency))
	return true
}

// AddService appends svc to the catalog. Duplicate ids are accepted; each
// copy renders its own card.
func (s *DefaultCatalogStore) AddService(svc models.Service) error {
	if problems := svc.Validate(); len(problems) > 0 {
		err := NewValidationError(problems)
		s.Logger.Warn("AddService: rejected service", zap.Error(err))
		return err
	}

	s.mu.Lock()
	if s.catalog == nil {
		s.mu.Unlock()
		return nil
	}
	duplicate := false
	for _, existing := range s.catalog.Services {
		if existing.ID.Equal(svc.ID) {
			duplicate = true
			break
		}
	}
	svc.VehicleTypes = append([]string(nil), svc.VehicleTypes...)
	s.catalog.Services = append(s.catalog.Services, svc)
	event := s.renderAllLocked()
	s.mu.Unlock()

	s.publish(event)
	if duplicate {
		s.Logger.Warn("AddService: service id already present", zap.String("serviceID", svc.ID.String()))
	}
	s.Logger.Info("AddService: service added", zap.String("serviceID", svc.ID.String()), zap.String("name", svc.Name))
	return nil
}

// RemoveService drops every service with the given id and returns how many
// were removed. The container is rebuilt even when nothing matched.
func (s *DefaultCatalogStore) RemoveService(id models.ServiceID) int {
	s.mu.Lock()
	if s.catalog == nil {
		s.mu.Unlock()
		return 0
	}
	kept := make([]models.Service, 0, len(s.catalog.Services))
	for _, svc := range s.catalog.Services {
		if !svc.ID.Equal(id) {
			kept = append(kept, svc)
		}
	}
	removed := len(s.catalog.Services) - len(kept)
	s.catalog.Services = kept
	event := s.renderAllLocked()
	s.mu.Unlock()

	s.publish(event)
	s.Logger.Info("RemoveService: services removed", zap.String("serviceID", id.String()), zap.Int("removed", removed))
	return removed
}

// Document returns a copy of the current catalog.
func (s *DefaultCatalogStore) Document() (models.CatalogDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return models.CatalogDocument{}, false
	}
	return s.catalog.Clone(), true
}

// WritePage serialises the page surface.
func (s *DefaultCatalogStore) WritePage(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Surface.Render(w)
}

func (s *DefaultCatalogStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog != nil
}

// RenderCount is the number of completed container rebuilds.
func (s *DefaultCatalogStore) RenderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

// renderAllLocked is what every mutation runs, so contact links are
// refreshed together with the cards.
func (s *DefaultCatalogStore) renderAllLocked() *models.RenderEvent {
	event := s.renderServicesLocked()
	s.bindContactLocked()
	return event
}

func (s *DefaultCatalogStore) renderServicesLocked() *models.RenderEvent {
	if s.catalog == nil || s.Surface == nil {
		return nil
	}
	cards, err := s.Cards.Cards(s.catalog.Services)
	if err != nil {
		s.Logger.Error("RenderServices: failed to build cards", zap.Error(err))
		return nil
	}
	if !s.Surface.ReplaceChildren(s.ContainerID, cards) {
		s.Logger.Debug("RenderServices: container not found", zap.String("containerID", s.ContainerID))
		return nil
	}
	s.renders++
	return &models.RenderEvent{
		Revision:   s.renders,
		Cards:      len(s.catalog.Services),
		RenderedAt: time.Now().UTC(),
	}
}

func (s *DefaultCatalogStore) bindContactLocked() {
	if s.catalog == nil || s.catalog.Contact == nil || s.Surface == nil {
		return
	}
	messaging, dial := s.Contact.Bind(s.Surface, *s.catalog.Contact)
	s.Logger.Debug("BindContact: links bound", zap.Int("messaging", messaging), zap.Int("dial", dial))
}

func (s *DefaultCatalogStore) publish(event *models.RenderEvent) {
	if event == nil || s.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.Publisher.PublishRender(ctx, *event); err != nil {
		s.Logger.Warn("RenderServices: failed to publish render event", zap.Int("revision", event.Revision), zap.Error(err))
	}
}
