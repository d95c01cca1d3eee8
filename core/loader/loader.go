package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is the interface every application feature implements.
type Feature interface {
	// Name returns the unique feature name (e.g. "baggage", "manifest").
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes on the given router.
	Load(app fiber.Router) error
}

// Manager holds the registry of available features.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the registry.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature, logging each one.
// It stops at the first feature that fails to load.
func (m *Manager) LoadAll(app fiber.Router, log *zap.Logger) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			log.Info("Feature disabled", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		log.Info("Feature loaded", zap.String("feature", f.Name()))
	}
	return nil
}
