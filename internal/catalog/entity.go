package catalog

import "time"

// Entity types the engine knows about. The store accepts any type string;
// these are the ones the rest of the system queries by name.
const (
	TypeService  = "service"
	TypePlatform = "platform"
	TypeFlow     = "flow"
	TypeFlowStep = "flow_step"
)

// Entity is one directory record. Type-specific fields live in Attrs and are
// read through the typed accessors rather than raw map indexing.
type Entity struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Attrs     map[string]any `json:"attrs"`
}

// StringAttr returns the named attribute as a string, or "" when absent or
// not a string.
func (e Entity) StringAttr(key string) string {
	v, _ := e.Attrs[key].(string)
	return v
}

// IntAttr returns the named attribute as an int. YAML and JSON decoding
// produce different numeric types for the same document, so all three common
// widths are accepted. Absent or non-numeric values yield zero.
func (e Entity) IntAttr(key string) int {
	switch v := e.Attrs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// StringMapAttr returns the named attribute as a string map, converting the
// map[string]any shape YAML decoding produces. Non-string values and absent
// keys are dropped.
func (e Entity) StringMapAttr(key string) map[string]string {
	out := make(map[string]string)
	switch m := e.Attrs[key].(type) {
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	case map[string]any:
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}

// clone returns a deep-enough copy: the Attrs map is duplicated so callers
// holding a returned Entity cannot reach stored state. Values inside Attrs
// are shared; the store never mutates them.
func (e Entity) clone() Entity {
	if e.Attrs == nil {
		return e
	}
	attrs := make(map[string]any, len(e.Attrs))
	for k, v := range e.Attrs {
		attrs[k] = v
	}
	e.Attrs = attrs
	return e
}
