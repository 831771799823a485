package dto

import "github.com/axd-platform/catalog/application/service"

// Stats is the admin dashboard summary.
type Stats struct {
	PendingPermissions int64 `json:"pendingPermissions"`
	PendingRequests    int64 `json:"pendingRequests"`
	NewComments        int64 `json:"newComments"`
	ActiveUsers        int64 `json:"activeUsers"`
}

// StatsFromDomain converts dashboard statistics.
func StatsFromDomain(s service.Stats) Stats {
	return Stats{
		PendingPermissions: s.PendingPermissions,
		PendingRequests:    s.PendingRequests,
		NewComments:        s.NewComments,
		ActiveUsers:        s.ActiveUsers,
	}
}

// SeedResponse reports what the sample data load inserted.
type SeedResponse struct {
	Message  string         `json:"message"`
	Inserted map[string]int `json:"inserted"`
}

// SeedResponseFromDomain converts a seed result.
func SeedResponseFromDomain(r service.SeedResult) SeedResponse {
	return SeedResponse{
		Message: "sample data initialized",
		Inserted: map[string]int{
			"services":            r.Services,
			"assets":              r.Assets,
			"columns":             r.Columns,
			"sample_rows":         r.Samples,
			"lineage":             r.Lineage,
			"request_categories":  r.Categories,
			"request_types":       r.Types,
			"permission_requests": r.PermissionRequests,
			"service_requests":    r.ServiceRequests,
		},
	}
}

// Health is the liveness response.
type Health struct {
	Status string `json:"status"`
}
