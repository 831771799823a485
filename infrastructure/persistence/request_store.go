package persistence

import (
	"github.com/axd-platform/catalog/domain/notification"
	"github.com/axd-platform/catalog/domain/request"
	"github.com/axd-platform/catalog/internal/database"
)

// CategoryStore implements request.CategoryStore using GORM.
type CategoryStore struct {
	database.Repository[request.Category, CategoryModel]
}

// NewCategoryStore creates a new CategoryStore.
func NewCategoryStore(db database.Database) CategoryStore {
	return CategoryStore{
		Repository: database.NewRepository[request.Category, CategoryModel](db, CategoryMapper{}, "request category"),
	}
}

// RequestTypeStore implements request.TypeStore using GORM.
type RequestTypeStore struct {
	database.Repository[request.Type, RequestTypeModel]
}

// NewRequestTypeStore creates a new RequestTypeStore.
func NewRequestTypeStore(db database.Database) RequestTypeStore {
	return RequestTypeStore{
		Repository: database.NewRepository[request.Type, RequestTypeModel](db, RequestTypeMapper{}, "request type"),
	}
}

// ServiceRequestStore implements request.ServiceRequestStore using GORM.
type ServiceRequestStore struct {
	database.Repository[request.ServiceRequest, ServiceRequestModel]
}

// NewServiceRequestStore creates a new ServiceRequestStore.
func NewServiceRequestStore(db database.Database) ServiceRequestStore {
	return ServiceRequestStore{
		Repository: database.NewRepository[request.ServiceRequest, ServiceRequestModel](db, ServiceRequestMapper{}, "service request"),
	}
}

// NotificationStore implements notification.Store using GORM.
type NotificationStore struct {
	database.Repository[notification.Notification, NotificationModel]
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(db database.Database) NotificationStore {
	return NotificationStore{
		Repository: database.NewRepository[notification.Notification, NotificationModel](db, NotificationMapper{}, "notification"),
	}
}

var (
	_ request.CategoryStore       = CategoryStore{}
	_ request.TypeStore           = RequestTypeStore{}
	_ request.ServiceRequestStore = ServiceRequestStore{}
	_ notification.Store          = NotificationStore{}
)
