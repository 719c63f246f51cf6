package lifecycle

import "strings"

// VisualClass is the semantic severity of a status. The rendering layer maps it to styling.
type VisualClass string

const (
	VisualInfo    VisualClass = "info"
	VisualWarning VisualClass = "warning"
	VisualSuccess VisualClass = "success"
	VisualDanger  VisualClass = "danger"
	VisualNeutral VisualClass = "neutral"
)

// Icon names a pictogram category, not a glyph.
type Icon string

const (
	IconClock      Icon = "clock"
	IconCheck      Icon = "check"
	IconTruck      Icon = "truck"
	IconPackage    Icon = "package"
	IconAlert      Icon = "alert"
	IconCreditCard Icon = "credit_card"
	IconFile       Icon = "file"
	IconSearch     Icon = "search"
	IconRefresh    Icon = "refresh"
	IconX          Icon = "x"
	IconHelp       Icon = "help"
)

// Stage groups statuses by where they sit in the lifecycle.
// Only StageInProgress drives the animated icon state.
type Stage string

const (
	StagePending    Stage = "pending"
	StageInProgress Stage = "in_progress"
	StageComplete   Stage = "complete"
	StageHalted     Stage = "halted"
)

// Audience selects which label a screen shows.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceInternal Audience = "internal"
)

// ParseAudience defaults to the customer audience.
func ParseAudience(raw string) Audience {
	if strings.EqualFold(strings.TrimSpace(raw), string(AudienceInternal)) {
		return AudienceInternal
	}
	return AudienceCustomer
}

// Descriptor is everything needed to present one status value.
type Descriptor struct {
	Value         string      `json:"value"`
	CustomerLabel string      `json:"customer_label"`
	InternalLabel string      `json:"internal_label,omitempty"`
	VisualClass   VisualClass `json:"visual_class"`
	Icon          Icon        `json:"icon"`
	Stage         Stage       `json:"stage"`
	CustomerHint  string      `json:"customer_hint,omitempty"`
}

// Label returns the label for the given audience. Staff fall back to the
// customer label when no internal one is set.
func (d Descriptor) Label(a Audience) string {
	if a == AudienceInternal && d.InternalLabel != "" {
		return d.InternalLabel
	}
	return d.CustomerLabel
}

// Animated reports whether the badge icon spins.
func (d Descriptor) Animated() bool {
	return d.Stage == StageInProgress
}

// FilterOption is one entry of a status filter dropdown.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const (
	FilterAll      = "all"
	FilterAllLabel = "All Statuses"
)

// Taxonomy is an immutable, ordered status table. Build it once with newTaxonomy.
type Taxonomy struct {
	name     string
	ordered  []Descriptor
	index    map[string]int
	fallback Descriptor
}

func newTaxonomy(name string, fallback Descriptor, descriptors ...Descriptor) *Taxonomy {
	t := &Taxonomy{
		name:     name,
		ordered:  make([]Descriptor, 0, len(descriptors)),
		index:    make(map[string]int, len(descriptors)),
		fallback: fallback,
	}
	for _, d := range descriptors {
		if _, dup := t.index[d.Value]; dup {
			panic("lifecycle: duplicate status " + d.Value + " in " + name + " taxonomy")
		}
		if d.Value == FilterAll || d.Value == fallback.Value {
			panic("lifecycle: reserved status " + d.Value + " in " + name + " taxonomy")
		}
		t.index[d.Value] = len(t.ordered)
		t.ordered = append(t.ordered, d)
	}
	return t
}

// Name is the taxonomy name ("order" or "quote").
func (t *Taxonomy) Name() string { return t.name }

// Lookup returns the descriptor for status, or the fallback descriptor when
// the value is not known. It never fails.
func (t *Taxonomy) Lookup(status string) Descriptor {
	if i, ok := t.index[status]; ok {
		return t.ordered[i]
	}
	return t.fallback
}

// Known reports whether status has its own descriptor.
func (t *Taxonomy) Known(status string) bool {
	_, ok := t.index[status]
	return ok
}

// Fallback is the neutral descriptor returned for unknown values.
func (t *Taxonomy) Fallback() Descriptor { return t.fallback }

// Descriptors returns a copy of the table in display order.
func (t *Taxonomy) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Values returns the known status values in display order.
func (t *Taxonomy) Values() []string {
	out := make([]string, 0, len(t.ordered))
	for _, d := range t.ordered {
		out = append(out, d.Value)
	}
	return out
}

// FilterOptions returns the dropdown options: "all" first, then every known
// status in display order, labelled for staff.
func (t *Taxonomy) FilterOptions() []FilterOption {
	out := make([]FilterOption, 0, len(t.ordered)+1)
	out = append(out, FilterOption{Value: FilterAll, Label: FilterAllLabel})
	for _, d := range t.ordered {
		out = append(out, FilterOption{Value: d.Value, Label: d.Label(AudienceInternal)})
	}
	return out
}

// ValidFilter reports whether v is "all" or a known status.
func (t *Taxonomy) ValidFilter(v string) bool {
	return v == FilterAll || t.Known(v)
}
