// Package bootstrap turns the embedded sample fixture into domain entities
// for seeding an empty catalog.
package bootstrap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/request"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixtureYAML []byte

// Fixture is the YAML sample catalog.
type Fixture struct {
	Services           []ServiceFixture        `yaml:"services"`
	Owner              PersonFixture           `yaml:"owner"`
	Columns            []ColumnFixture         `yaml:"columns"`
	Assets             []AssetFixture          `yaml:"assets"`
	Lineage            []LineageFixture        `yaml:"lineage"`
	Categories         []CategoryFixture       `yaml:"categories"`
	PermissionRequests []PermissionFixture     `yaml:"permission_requests"`
	ServiceRequests    []ServiceRequestFixture `yaml:"service_requests"`
}

// ServiceFixture describes a service.
type ServiceFixture struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
}

// PersonFixture identifies an owner or requester.
type PersonFixture struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// ColumnFixture is a column template applied to every asset.
type ColumnFixture struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Nullable    bool   `yaml:"nullable"`
}

// AssetFixture describes an asset.
type AssetFixture struct {
	Name        string `yaml:"name"`
	Schema      string `yaml:"schema"`
	Database    string `yaml:"database"`
	Service     string `yaml:"service"`
	Sensitivity string `yaml:"sensitivity"`
}

// Ref returns the "database.schema.name" key other fixture entries use.
func (a AssetFixture) Ref() string {
	return a.Database + "." + a.Schema + "." + a.Name
}

// LineageFixture describes an edge between two asset refs.
type LineageFixture struct {
	Source         string `yaml:"source"`
	Target         string `yaml:"target"`
	Transformation string `yaml:"transformation"`
	Summary        string `yaml:"summary"`
}

// CategoryFixture describes a request category and its types.
type CategoryFixture struct {
	Name        string        `yaml:"name"`
	Slug        string        `yaml:"slug"`
	Description string        `yaml:"description"`
	Icon        string        `yaml:"icon"`
	Color       string        `yaml:"color"`
	Simple      bool          `yaml:"simple"`
	Types       []TypeFixture `yaml:"types"`
}

// TypeFixture describes a request type.
type TypeFixture struct {
	Slug             string         `yaml:"slug"`
	Name             string         `yaml:"name"`
	Description      string         `yaml:"description"`
	EstimatedDays    int            `yaml:"estimated_days"`
	RequiresApproval bool           `yaml:"requires_approval"`
	FormSchema       map[string]any `yaml:"form_schema"`
}

// PermissionFixture describes a pending permission request.
type PermissionFixture struct {
	Asset     string        `yaml:"asset"`
	Requester PersonFixture `yaml:"requester"`
	Level     string        `yaml:"level"`
	Purpose   string        `yaml:"purpose"`
	Reason    string        `yaml:"reason"`
	Duration  string        `yaml:"duration"`
}

// ServiceRequestFixture describes a submitted service request.
type ServiceRequestFixture struct {
	Type        string         `yaml:"type"`
	Requester   PersonFixture  `yaml:"requester"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Priority    string         `yaml:"priority"`
	FormData    map[string]any `yaml:"form_data"`
}

// Dataset holds the entities built from a fixture, ready for insertion in
// slice order.
type Dataset struct {
	Services           []asset.Service
	Assets             []asset.Asset
	Columns            []asset.Column
	Samples            []asset.SampleRow
	Lineage            []asset.Lineage
	Categories         []request.Category
	Types              []request.Type
	PermissionRequests []access.Request
	ServiceRequests    []request.ServiceRequest
}

// Load parses the embedded fixture.
func Load() (Fixture, error) {
	return Parse(fixtureYAML)
}

// Parse decodes a fixture document.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// Build creates domain entities from the fixture. Creation times are spaced
// one second apart starting at now so listings keep fixture order.
func (f Fixture) Build(now time.Time) (Dataset, error) {
	var ds Dataset

	services := make(map[string]string, len(f.Services))
	for _, s := range f.Services {
		svc := asset.NewService(s.Name, s.Description).WithAppearance(s.Icon, s.Color)
		services[s.Key] = svc.ID()
		ds.Services = append(ds.Services, svc)
	}

	owner := asset.NewOwner(f.Owner.ID, f.Owner.Name, f.Owner.Email)
	assets := make(map[string]string, len(f.Assets))
	for i, af := range f.Assets {
		sensitivity, err := asset.ParseSensitivity(af.Sensitivity)
		if err != nil {
			return Dataset{}, fmt.Errorf("asset %s: %w", af.Ref(), err)
		}
		serviceID, ok := services[af.Service]
		if !ok {
			return Dataset{}, fmt.Errorf("asset %s: unknown service %q", af.Ref(), af.Service)
		}
		if _, dup := assets[af.Ref()]; dup {
			return Dataset{}, fmt.Errorf("asset %s: duplicate reference", af.Ref())
		}

		a := asset.NewAsset(af.Name, af.Schema, af.Database, sensitivity).
			WithService(serviceID).
			WithOwner(owner).
			WithDescription(fmt.Sprintf("Specification of the %s table", af.Name)).
			WithCreatedAt(now.Add(time.Duration(i) * time.Second))
		assets[af.Ref()] = a.ID()
		ds.Assets = append(ds.Assets, a)

		for pos, cf := range f.Columns {
			ds.Columns = append(ds.Columns, asset.NewColumn(a.ID(), cf.Name, cf.Type, pos+1).
				WithDescription(cf.Description).
				WithNullable(cf.Nullable))
		}
		ds.Samples = append(ds.Samples, asset.NewSampleRow(a.ID(), map[string]any{
			"id":         100 + i,
			"name":       "Sample " + af.Name,
			"status":     "ACTIVE",
			"created_at": "2024-01-01",
			"updated_at": "2024-02-05",
		}))
	}

	for _, lf := range f.Lineage {
		source, ok := assets[lf.Source]
		if !ok {
			return Dataset{}, fmt.Errorf("lineage: unknown source %q", lf.Source)
		}
		target, ok := assets[lf.Target]
		if !ok {
			return Dataset{}, fmt.Errorf("lineage: unknown target %q", lf.Target)
		}
		ds.Lineage = append(ds.Lineage, asset.NewLineage(
			asset.NewEndpoint(source, lf.Source, ""),
			asset.NewEndpoint(target, lf.Target, ""),
			lf.Transformation,
			lf.Summary,
		))
	}

	types := make(map[string]string)
	for i, cf := range f.Categories {
		c := request.NewCategory(cf.Name, cf.Slug, cf.Description, i+1).WithAppearance(cf.Icon, cf.Color, cf.Simple)
		ds.Categories = append(ds.Categories, c)
		for j, tf := range cf.Types {
			var schema json.RawMessage
			if tf.FormSchema != nil {
				b, err := json.Marshal(tf.FormSchema)
				if err != nil {
					return Dataset{}, fmt.Errorf("request type %s: form schema: %w", tf.Slug, err)
				}
				schema = b
			}
			t := request.NewType(c.ID(), tf.Name, tf.Slug, tf.Description, tf.EstimatedDays, tf.RequiresApproval, schema, j+1)
			types[tf.Slug] = t.ID()
			ds.Types = append(ds.Types, t)
		}
	}

	for _, pf := range f.PermissionRequests {
		assetID, ok := assets[pf.Asset]
		if !ok {
			return Dataset{}, fmt.Errorf("permission request: unknown asset %q", pf.Asset)
		}
		level, err := access.ParseLevel(pf.Level)
		if err != nil {
			return Dataset{}, fmt.Errorf("permission request: %w", err)
		}
		purpose, err := access.ParsePurpose(pf.Purpose)
		if err != nil {
			return Dataset{}, fmt.Errorf("permission request: %w", err)
		}
		duration, err := access.ParseDuration(pf.Duration)
		if err != nil {
			return Dataset{}, fmt.Errorf("permission request: %w", err)
		}
		requester := access.NewPrincipal(pf.Requester.ID, pf.Requester.Name, pf.Requester.Email)
		ds.PermissionRequests = append(ds.PermissionRequests,
			access.NewRequest(assetID, requester, level, purpose, pf.Reason, duration, now))
	}

	for _, sf := range f.ServiceRequests {
		typeID, ok := types[sf.Type]
		if !ok {
			return Dataset{}, fmt.Errorf("service request: unknown type %q", sf.Type)
		}
		requester := request.Requester{ID: sf.Requester.ID, Name: sf.Requester.Name, Email: sf.Requester.Email}
		ds.ServiceRequests = append(ds.ServiceRequests, request.NewServiceRequest(
			typeID, requester, sf.Title, sf.Description, sf.FormData, request.Priority(sf.Priority)))
	}

	return ds, nil
}
