package manifest

import (
	"baggage-manager/core/storage"
	"baggage-manager/feature/baggage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Manifest feature sharing the baggage store.
// archive may be nil when manifest archival is disabled.
func NewFeature(store *baggage.Store, archive storage.Client, bucket string, logger *zap.Logger, airport, defaultFamily string) *Feature {
	svc := NewService(store, archive, bucket, logger, airport, defaultFamily)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Service returns the underlying service for the CLI reconcile command.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "manifest"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
