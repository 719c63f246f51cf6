package lifecycle

import "strings"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantCompact Variant = "compact"
)

// ParseVariant defaults to VariantDefault.
func ParseVariant(raw string) Variant {
	if strings.EqualFold(strings.TrimSpace(raw), string(VariantCompact)) {
		return VariantCompact
	}
	return VariantDefault
}

// Tooltip is only present when it has something to say.
type Tooltip struct {
	Hint    string `json:"hint,omitempty"`
	Blocker string `json:"blocker,omitempty"`
}

// Badge is a self-contained status presentation unit.
type Badge struct {
	Status      string      `json:"status"`
	Label       string      `json:"label"`
	VisualClass VisualClass `json:"visual_class"`
	Icon        Icon        `json:"icon,omitempty"`
	Animated    bool        `json:"animated"`
	Variant     Variant     `json:"variant"`
	Tooltip     *Tooltip    `json:"tooltip,omitempty"`
}

type BadgeOptions struct {
	Variant  Variant
	Audience Audience
	// Context enables blocker sentences. Orders only.
	Context *BlockerContext
}

// RenderOrderBadge renders an order status. The status argument wins over
// Context.Status when both are given.
func RenderOrderBadge(status string, opts BadgeOptions) Badge {
	d := orders.Lookup(status)
	blocker := ""
	if opts.Context != nil {
		bc := *opts.Context
		bc.Status = ParseOrderStatus(status)
		blocker = bc.Blocker()
	}
	return render(d, opts, blocker)
}

// RenderQuoteBadge renders a quote status.
func RenderQuoteBadge(status string, opts BadgeOptions) Badge {
	return render(quotes.Lookup(status), opts, "")
}

func render(d Descriptor, opts BadgeOptions, blocker string) Badge {
	variant := opts.Variant
	if variant == "" {
		variant = VariantDefault
	}
	audience := opts.Audience
	if audience == "" {
		audience = AudienceCustomer
	}

	b := Badge{
		Status:      d.Value,
		Label:       d.Label(audience),
		VisualClass: d.VisualClass,
		Variant:     variant,
	}
	if variant != VariantCompact {
		b.Icon = d.Icon
		b.Animated = d.Animated()
	}
	if blocker != "" || d.CustomerHint != "" {
		b.Tooltip = &Tooltip{Hint: d.CustomerHint, Blocker: blocker}
	}
	return b
}
