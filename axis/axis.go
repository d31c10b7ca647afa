package axis

import "fmt"

// Size is the number of axes in the coordinate space.
const Size = 8

// ID identifies a single bipolar axis.
type ID string

// Axis identifiers for the archetype coordinate space.
const (
	// OrderChaos spans structure and lawfulness (order) to dissolution and
	// generative disorder (chaos).
	OrderChaos ID = "order-chaos"

	// LightShadow spans the conscious, declared aspect (light) to the
	// repressed, hidden aspect (shadow).
	LightShadow ID = "light-shadow"

	// StasisFlux spans permanence (stasis) to transformation (flux).
	StasisFlux ID = "stasis-flux"

	// UnityMultiplicity spans the undivided whole (unity) to the
	// differentiated many (multiplicity).
	UnityMultiplicity ID = "unity-multiplicity"

	// MatterSpirit spans the embodied and concrete (matter) to the
	// abstract and transcendent (spirit).
	MatterSpirit ID = "matter-spirit"

	// ReasonInstinct spans deliberate cognition (reason) to pre-rational
	// drive (instinct).
	ReasonInstinct ID = "reason-instinct"

	// CreationDestruction spans bringing-forth (creation) to unmaking
	// (destruction).
	CreationDestruction ID = "creation-destruction"

	// SelfOther spans the individuated subject (self) to the relational
	// field (other).
	SelfOther ID = "self-other"
)

// Axis is one bipolar dimension with its two named poles.
// Low names the pole at 0.0, High the pole at 1.0.
type Axis struct {
	ID   ID
	Low  string
	High string
}

// canonical is the fixed axis table. Order is significant for display only.
var canonical = []Axis{
	{ID: OrderChaos, Low: "order", High: "chaos"},
	{ID: LightShadow, Low: "light", High: "shadow"},
	{ID: StasisFlux, Low: "stasis", High: "flux"},
	{ID: UnityMultiplicity, Low: "unity", High: "multiplicity"},
	{ID: MatterSpirit, Low: "matter", High: "spirit"},
	{ID: ReasonInstinct, Low: "reason", High: "instinct"},
	{ID: CreationDestruction, Low: "creation", High: "destruction"},
	{ID: SelfOther, Low: "self", High: "other"},
}

// ConfigurationError indicates the axis table itself is malformed.
// It is the only fatal error class: no entity check is meaningful without a
// valid axis set, so callers abort before validating anything.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("axis registry misconfigured: %s", e.Reason)
}

// Registry is the fixed, ordered set of axes defining the space.
// It is immutable after construction.
type Registry struct {
	axes []Axis
	byID map[ID]Axis
}

// NewRegistry builds a registry from an axis table, validating it.
// It returns a *ConfigurationError when the table has the wrong axis count,
// duplicate identifiers, duplicate pole names, or unnamed poles.
func NewRegistry(axes []Axis) (*Registry, error) {
	if len(axes) != Size {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("expected %d axes, got %d", Size, len(axes))}
	}

	byID := make(map[ID]Axis, len(axes))
	poles := make(map[string]ID, len(axes)*2)
	for _, a := range axes {
		if a.ID == "" {
			return nil, &ConfigurationError{Reason: "axis with empty identifier"}
		}
		if _, dup := byID[a.ID]; dup {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("duplicate axis %q", a.ID)}
		}
		if a.Low == "" || a.High == "" {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("axis %q has an unnamed pole", a.ID)}
		}
		if a.Low == a.High {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("axis %q has identical pole names", a.ID)}
		}
		for _, pole := range []string{a.Low, a.High} {
			if owner, dup := poles[pole]; dup {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("pole name %q shared by axes %q and %q", pole, owner, a.ID)}
			}
			poles[pole] = a.ID
		}
		byID[a.ID] = a
	}

	// The registry owns its table; don't alias the caller's slice.
	owned := make([]Axis, len(axes))
	copy(owned, axes)

	return &Registry{axes: owned, byID: byID}, nil
}

// MustNewRegistry is NewRegistry that panics on error. Intended for the
// package-level canonical table, where a bad table is a programming error.
func MustNewRegistry(axes []Axis) *Registry {
	r, err := NewRegistry(axes)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustNewRegistry(canonical)

// Default returns the canonical eight-axis registry.
func Default() *Registry {
	return defaultRegistry
}

// Axes returns the ordered axis table.
func (r *Registry) Axes() []Axis {
	out := make([]Axis, len(r.axes))
	copy(out, r.axes)
	return out
}

// IDs returns the ordered axis identifiers.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.axes))
	for i, a := range r.axes {
		out[i] = a.ID
	}
	return out
}

// Lookup returns the axis for id.
func (r *Registry) Lookup(id ID) (Axis, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Contains reports whether id is a registered axis.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of axes.
func (r *Registry) Len() int {
	return len(r.axes)
}
