// Package ecosystem bulk-loads a modeled architecture from YAML into the
// entity catalog and the dependency graph. One document describes services,
// platforms, flows, flow steps, and dependency edges.
package ecosystem

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meshsim/meshsim/internal/catalog"
	"github.com/meshsim/meshsim/internal/graph"
)

// Document is the YAML shape of an ecosystem definition.
type Document struct {
	// Services lists the modeled services.
	Services []ServiceDef `yaml:"services,omitempty"`

	// Platforms lists the platforms services belong to.
	Platforms []PlatformDef `yaml:"platforms,omitempty"`

	// Flows lists the business flows traces are synthesized for.
	Flows []FlowDef `yaml:"flows,omitempty"`

	// FlowSteps lists the hops of every flow, linked by flow_id.
	FlowSteps []StepDef `yaml:"flow_steps,omitempty"`

	// Dependencies lists the directed dependency edges.
	Dependencies []DependencyDef `yaml:"dependencies,omitempty"`
}

// ServiceDef defines one service entry.
type ServiceDef struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	ServiceType string            `yaml:"service_type,omitempty"`
	APIVersion  string            `yaml:"api_version,omitempty"`
	PlatformID  string            `yaml:"platform_id,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// PlatformDef defines one platform entry.
type PlatformDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// FlowDef defines one flow entry.
type FlowDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	FlowType string `yaml:"flow_type,omitempty"`
}

// StepDef defines one hop of a flow.
type StepDef struct {
	FlowID        string `yaml:"flow_id"`
	StepNumber    int    `yaml:"step_number"`
	FromServiceID string `yaml:"from_service_id"`
	ToServiceID   string `yaml:"to_service_id"`
}

// DependencyDef defines one dependency edge.
type DependencyDef struct {
	SourceID       string `yaml:"source_id"`
	SourceType     string `yaml:"source_type,omitempty"`
	TargetID       string `yaml:"target_id"`
	TargetType     string `yaml:"target_type,omitempty"`
	DependencyType string `yaml:"dependency_type,omitempty"`
	Severity       string `yaml:"severity,omitempty"`
}

// Counts reports how many records of each kind a load stored.
type Counts struct {
	Services     int `json:"services"`
	Platforms    int `json:"platforms"`
	Flows        int `json:"flows"`
	FlowSteps    int `json:"flow_steps"`
	Dependencies int `json:"dependencies"`
}

// Parse decodes an ecosystem document with strict field validation, so typos
// in section or field names fail loudly instead of loading nothing.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse ecosystem YAML: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid ecosystem: %w", err)
	}
	return &doc, nil
}

// Load stores a parsed document into the catalog and graph and returns
// per-kind counts.
func Load(doc *Document, cat *catalog.Store, g *graph.Store) Counts {
	for _, p := range doc.Platforms {
		cat.Put(catalog.Entity{ID: p.ID, Type: catalog.TypePlatform, Name: p.Name})
	}

	for _, s := range doc.Services {
		attrs := map[string]any{}
		if s.ServiceType != "" {
			attrs["service_type"] = s.ServiceType
		}
		if s.APIVersion != "" {
			attrs["api_version"] = s.APIVersion
		}
		if s.PlatformID != "" {
			attrs["platform_id"] = s.PlatformID
		}
		if len(s.Metadata) > 0 {
			attrs["metadata"] = s.Metadata
		}
		cat.Put(catalog.Entity{ID: s.ID, Type: catalog.TypeService, Name: s.Name, Attrs: attrs})
	}

	for _, f := range doc.Flows {
		cat.Put(catalog.Entity{ID: f.ID, Type: catalog.TypeFlow, Name: f.Name,
			Attrs: map[string]any{"flow_type": f.FlowType}})
	}

	for _, step := range doc.FlowSteps {
		cat.Put(catalog.Entity{Type: catalog.TypeFlowStep, Attrs: map[string]any{
			"flow_id":         step.FlowID,
			"step_number":     step.StepNumber,
			"from_service_id": step.FromServiceID,
			"to_service_id":   step.ToServiceID,
		}})
	}

	for _, dep := range doc.Dependencies {
		source := graph.EntityRef{ID: dep.SourceID, Type: entityType(dep.SourceType)}
		target := graph.EntityRef{ID: dep.TargetID, Type: entityType(dep.TargetType)}
		g.AddEdge(source, target,
			graph.DependencyType(dep.DependencyType), graph.Severity(dep.Severity))
	}

	return Counts{
		Services:     len(doc.Services),
		Platforms:    len(doc.Platforms),
		Flows:        len(doc.Flows),
		FlowSteps:    len(doc.FlowSteps),
		Dependencies: len(doc.Dependencies),
	}
}

// LoadBytes parses and loads in one call.
func LoadBytes(data []byte, cat *catalog.Store, g *graph.Store) (Counts, error) {
	doc, err := Parse(data)
	if err != nil {
		return Counts{}, err
	}
	return Load(doc, cat, g), nil
}

// LoadFile reads, parses, and loads an ecosystem YAML file.
func LoadFile(path string, cat *catalog.Store, g *graph.Store) (Counts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to read ecosystem file: %w", err)
	}
	return LoadBytes(data, cat, g)
}

// validate checks referential fields a load cannot proceed without. Soft
// references (a step naming a service the document never defines) are left
// alone; the engine treats those as data.
func validate(doc *Document) error {
	for i, s := range doc.Services {
		if s.ID == "" {
			return fmt.Errorf("services[%d]: id is required", i)
		}
	}
	for i, p := range doc.Platforms {
		if p.ID == "" {
			return fmt.Errorf("platforms[%d]: id is required", i)
		}
	}
	for i, f := range doc.Flows {
		if f.ID == "" {
			return fmt.Errorf("flows[%d]: id is required", i)
		}
	}
	for i, step := range doc.FlowSteps {
		if step.FlowID == "" {
			return fmt.Errorf("flow_steps[%d]: flow_id is required", i)
		}
		if step.FromServiceID == "" || step.ToServiceID == "" {
			return fmt.Errorf("flow_steps[%d]: from_service_id and to_service_id are required", i)
		}
	}
	for i, dep := range doc.Dependencies {
		if dep.SourceID == "" || dep.TargetID == "" {
			return fmt.Errorf("dependencies[%d]: source_id and target_id are required", i)
		}
	}
	return nil
}

// entityType defaults blank dependency endpoint types to "service".
func entityType(t string) string {
	if t == "" {
		return "service"
	}
	return t
}
