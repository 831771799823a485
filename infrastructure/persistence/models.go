package persistence

import (
	"time"

	"gorm.io/datatypes"
)

// ServiceModel represents a source system grouping assets.
type ServiceModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Name        string    `gorm:"column:name;size:100;not null;index"`
	Description string    `gorm:"column:description;type:text"`
	Icon        string    `gorm:"column:icon;size:50;default:database"`
	Color       string    `gorm:"column:color;size:20;default:blue"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (ServiceModel) TableName() string {
	return "services"
}

// AssetModel represents a data asset in the database.
type AssetModel struct {
	ID                 string         `gorm:"column:id;primaryKey;size:36"`
	Name               string         `gorm:"column:name;size:255;not null;index"`
	Description        string         `gorm:"column:description;type:text"`
	SchemaName         string         `gorm:"column:schema_name;size:100"`
	DatabaseName       string         `gorm:"column:database_name;size:100"`
	ServiceID          *string        `gorm:"column:service_id;size:36;index"`
	Service            *ServiceModel  `gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL"`
	OwnerID            string         `gorm:"column:owner_id;size:100"`
	OwnerName          string         `gorm:"column:owner_name;size:100"`
	OwnerEmail         string         `gorm:"column:owner_email;size:255"`
	Tags               datatypes.JSON `gorm:"column:tags"`
	BusinessDefinition string         `gorm:"column:business_definition;type:text"`
	DocLinks           datatypes.JSON `gorm:"column:doc_links"`
	SensitivityLevel   string         `gorm:"column:sensitivity_level;size:20;default:public"`
	RequiresPermission bool           `gorm:"column:requires_permission;default:false"`
	CreatedAt          time.Time      `gorm:"column:created_at;index"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName returns the table name.
func (AssetModel) TableName() string {
	return "data_assets"
}

// ColumnModel represents one column of an asset.
type ColumnModel struct {
	ID              string      `gorm:"column:id;primaryKey;size:36"`
	AssetID         string      `gorm:"column:asset_id;size:36;not null;uniqueIndex:idx_asset_columns_position"`
	Asset           *AssetModel `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	ColumnName      string      `gorm:"column:column_name;size:255;not null"`
	DataType        string      `gorm:"column:data_type;size:100"`
	Description     string      `gorm:"column:description;type:text"`
	IsNullable      bool        `gorm:"column:is_nullable"`
	IsPII           bool        `gorm:"column:is_pii;default:false"`
	DQNullRatio     float64     `gorm:"column:dq_null_ratio;default:0"`
	DQFreshness     string      `gorm:"column:dq_freshness;size:20;default:good"`
	OrdinalPosition int         `gorm:"column:ordinal_position;uniqueIndex:idx_asset_columns_position"`
}

// TableName returns the table name.
func (ColumnModel) TableName() string {
	return "asset_columns"
}

// LineageModel represents a directed lineage edge. Asset ids are not
// constrained since endpoints may lie outside the catalog.
type LineageModel struct {
	ID                 string    `gorm:"column:id;primaryKey;size:36"`
	SourceAssetID      *string   `gorm:"column:source_asset_id;size:36;index"`
	TargetAssetID      *string   `gorm:"column:target_asset_id;size:36;index"`
	SourceName         string    `gorm:"column:source_name;size:255"`
	TargetName         string    `gorm:"column:target_name;size:255"`
	SourceType         string    `gorm:"column:source_type;size:50;default:table"`
	TargetType         string    `gorm:"column:target_type;size:50;default:table"`
	TransformationType string    `gorm:"column:transformation_type;size:50;default:ETL"`
	ETLLogicSummary    string    `gorm:"column:etl_logic_summary;type:text"`
	CreatedAt          time.Time `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (LineageModel) TableName() string {
	return "data_lineage"
}

// CommentModel represents a comment on an asset.
type CommentModel struct {
	ID        string      `gorm:"column:id;primaryKey;size:36"`
	AssetID   string      `gorm:"column:asset_id;size:36;not null;index"`
	Asset     *AssetModel `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	UserID    string      `gorm:"column:user_id;size:100;not null"`
	UserName  string      `gorm:"column:user_name;size:100"`
	Content   string      `gorm:"column:content;type:text;not null"`
	ParentID  *string     `gorm:"column:parent_id;size:36;index"`
	IsAnswer  bool        `gorm:"column:is_answer;default:false"`
	CreatedAt time.Time   `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (CommentModel) TableName() string {
	return "asset_comments"
}

// GrantModel represents an asset permission held by a user.
type GrantModel struct {
	ID              string      `gorm:"column:id;primaryKey;size:36"`
	AssetID         string      `gorm:"column:asset_id;size:36;not null;index"`
	Asset           *AssetModel `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	UserID          string      `gorm:"column:user_id;size:100;not null;index"`
	UserName        string      `gorm:"column:user_name;size:100"`
	UserEmail       string      `gorm:"column:user_email;size:255"`
	PermissionLevel string      `gorm:"column:permission_level;size:20;default:viewer"`
	GrantedBy       string      `gorm:"column:granted_by;size:100"`
	GrantedByName   string      `gorm:"column:granted_by_name;size:100"`
	GrantedAt       time.Time   `gorm:"column:granted_at"`
	ExpiresAt       *time.Time  `gorm:"column:expires_at"`
	RevokedAt       *time.Time  `gorm:"column:revoked_at"`
	RevokedBy       string      `gorm:"column:revoked_by;size:100"`
	CreatedAt       time.Time   `gorm:"column:created_at"`
}

// TableName returns the table name.
func (GrantModel) TableName() string {
	return "asset_permissions"
}

// PermissionRequestModel represents a request for access to an asset.
type PermissionRequestModel struct {
	ID              string      `gorm:"column:id;primaryKey;size:36"`
	AssetID         string      `gorm:"column:asset_id;size:36;not null;index"`
	Asset           *AssetModel `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	RequesterID     string      `gorm:"column:requester_id;size:100;not null;index"`
	RequesterName   string      `gorm:"column:requester_name;size:100"`
	RequesterEmail  string      `gorm:"column:requester_email;size:255"`
	RequestedLevel  string      `gorm:"column:requested_level;size:20;default:viewer"`
	PurposeCategory string      `gorm:"column:purpose_category;size:50"`
	Reason          string      `gorm:"column:reason;type:text"`
	Duration        string      `gorm:"column:duration;size:20;default:3months"`
	Status          string      `gorm:"column:status;size:20;default:pending;index"`
	ReviewerID      string      `gorm:"column:reviewer_id;size:100"`
	ReviewerName    string      `gorm:"column:reviewer_name;size:100"`
	ReviewerComment string      `gorm:"column:reviewer_comment;type:text"`
	ReviewedAt      *time.Time  `gorm:"column:reviewed_at"`
	CreatedAt       time.Time   `gorm:"column:created_at;index"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName returns the table name.
func (PermissionRequestModel) TableName() string {
	return "permission_requests"
}

// SampleModel represents one sample row of an asset.
type SampleModel struct {
	ID        string         `gorm:"column:id;primaryKey;size:36"`
	AssetID   string         `gorm:"column:asset_id;size:36;not null;index"`
	Asset     *AssetModel    `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	RowData   datatypes.JSON `gorm:"column:row_data"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (SampleModel) TableName() string {
	return "sample_data"
}

// CategoryModel represents a request center category.
type CategoryModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Slug        string    `gorm:"column:slug;size:100;not null;uniqueIndex"`
	Description string    `gorm:"column:description;type:text"`
	Icon        string    `gorm:"column:icon;size:50;default:file"`
	Color       string    `gorm:"column:color;size:20;default:gray"`
	IsSimple    bool      `gorm:"column:is_simple;default:false"`
	SortOrder   int       `gorm:"column:sort_order;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (CategoryModel) TableName() string {
	return "request_categories"
}

// RequestTypeModel represents a kind of service request.
type RequestTypeModel struct {
	ID               string         `gorm:"column:id;primaryKey;size:36"`
	CategoryID       string         `gorm:"column:category_id;size:36;not null;index"`
	Category         *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Name             string         `gorm:"column:name;size:100;not null"`
	Slug             string         `gorm:"column:slug;size:100;not null"`
	Description      string         `gorm:"column:description;type:text"`
	EstimatedDays    int            `gorm:"column:estimated_days;default:3"`
	RequiresApproval bool           `gorm:"column:requires_approval"`
	FormSchema       datatypes.JSON `gorm:"column:form_schema"`
	SortOrder        int            `gorm:"column:sort_order;default:0"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
}

// TableName returns the table name.
func (RequestTypeModel) TableName() string {
	return "request_types"
}

// ServiceRequestModel represents a request filed in the request center.
type ServiceRequestModel struct {
	ID             string            `gorm:"column:id;primaryKey;size:36"`
	RequestTypeID  string            `gorm:"column:request_type_id;size:36;not null;index"`
	RequestType    *RequestTypeModel `gorm:"foreignKey:RequestTypeID;constraint:OnDelete:CASCADE"`
	RequesterID    string            `gorm:"column:requester_id;size:100;not null;index"`
	RequesterName  string            `gorm:"column:requester_name;size:100"`
	RequesterEmail string            `gorm:"column:requester_email;size:255"`
	Title          string            `gorm:"column:title;size:255;not null"`
	Description    string            `gorm:"column:description;type:text"`
	FormData       datatypes.JSON    `gorm:"column:form_data"`
	Priority       string            `gorm:"column:priority;size:20;default:medium"`
	Status         string            `gorm:"column:status;size:20;default:submitted;index"`
	AssigneeID     string            `gorm:"column:assignee_id;size:100"`
	AssigneeName   string            `gorm:"column:assignee_name;size:100"`
	AssigneeEmail  string            `gorm:"column:assignee_email;size:255"`
	DueDate        *time.Time        `gorm:"column:due_date"`
	CompletedAt    *time.Time        `gorm:"column:completed_at"`
	AdminNotes     string            `gorm:"column:admin_notes;type:text"`
	CreatedAt      time.Time         `gorm:"column:created_at;index"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName returns the table name.
func (ServiceRequestModel) TableName() string {
	return "service_requests"
}

// NotificationModel represents an in-app notification.
type NotificationModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	UserID    string    `gorm:"column:user_id;size:100;not null;index"`
	Type      string    `gorm:"column:type;size:50"`
	Title     string    `gorm:"column:title;size:255"`
	Message   string    `gorm:"column:message;type:text"`
	Link      string    `gorm:"column:link;size:500"`
	IsRead    bool      `gorm:"column:is_read;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (NotificationModel) TableName() string {
	return "notifications"
}
