package asset

import (
	"time"

	"github.com/google/uuid"
)

// Default presentation values for services.
const (
	DefaultServiceIcon  = "database"
	DefaultServiceColor = "blue"
)

// Service is a product or platform that owns a group of assets.
type Service struct {
	id          string
	name        string
	description string
	icon        string
	color       string
	createdAt   time.Time
}

// NewService creates a service that has not been persisted.
func NewService(name, description string) Service {
	return Service{
		id:          uuid.NewString(),
		name:        name,
		description: description,
		icon:        DefaultServiceIcon,
		color:       DefaultServiceColor,
		createdAt:   time.Now().UTC(),
	}
}

// ReconstructService recreates a service from persistence.
func ReconstructService(id, name, description, icon, color string, createdAt time.Time) Service {
	return Service{
		id:          id,
		name:        name,
		description: description,
		icon:        icon,
		color:       color,
		createdAt:   createdAt,
	}
}

// ID returns the service id.
func (s Service) ID() string { return s.id }

// Name returns the service name.
func (s Service) Name() string { return s.name }

// Description returns the service description.
func (s Service) Description() string { return s.description }

// Icon returns the icon key used by clients.
func (s Service) Icon() string { return s.icon }

// Color returns the color key used by clients.
func (s Service) Color() string { return s.color }

// CreatedAt returns the creation time.
func (s Service) CreatedAt() time.Time { return s.createdAt }

// WithAppearance returns a copy with the icon and color set. Empty values keep the current ones.
func (s Service) WithAppearance(icon, color string) Service {
	if icon != "" {
		s.icon = icon
	}
	if color != "" {
		s.color = color
	}
	return s
}
