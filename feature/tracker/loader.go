package tracker

import (
	"time"

	"leader-dojo/feature/importer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Tracker feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, importTimeout time.Duration) *Feature {
	engine := importer.NewService(db, logger)
	svc := NewService(db, logger, engine, importTimeout)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "tracker"
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
