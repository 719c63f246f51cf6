package lifecycle

// QuoteStatus is the persisted quote lifecycle value.
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusReviewed  QuoteStatus = "reviewed"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusConverted QuoteStatus = "converted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusDeclined  QuoteStatus = "declined"

	QuoteStatusUnknown QuoteStatus = "unknown"
)

var quotes = newTaxonomy("quote",
	Descriptor{
		Value:         string(QuoteStatusUnknown),
		CustomerLabel: "Unknown",
		VisualClass:   VisualNeutral,
		Icon:          IconHelp,
		Stage:         StagePending,
	},
	Descriptor{
		Value:         string(QuoteStatusDraft),
		CustomerLabel: "Draft",
		VisualClass:   VisualNeutral,
		Icon:          IconFile,
		Stage:         StagePending,
		CustomerHint:  "This request has not been submitted yet.",
	},
	Descriptor{
		Value:         string(QuoteStatusPending),
		CustomerLabel: "Pending Review",
		InternalLabel: "Pending",
		VisualClass:   VisualWarning,
		Icon:          IconClock,
		Stage:         StagePending,
		CustomerHint:  "Our team will review your request soon.",
	},
	Descriptor{
		Value:         string(QuoteStatusReviewed),
		CustomerLabel: "Under Review",
		InternalLabel: "Reviewed",
		VisualClass:   VisualInfo,
		Icon:          IconSearch,
		Stage:         StageInProgress,
		CustomerHint:  "We are preparing pricing for your request.",
	},
	Descriptor{
		Value:         string(QuoteStatusQuoted),
		CustomerLabel: "Quote Ready",
		InternalLabel: "Quoted",
		VisualClass:   VisualSuccess,
		Icon:          IconFile,
		Stage:         StagePending,
		CustomerHint:  "Your quote is ready. Accept it to place the order.",
	},
	Descriptor{
		Value:         string(QuoteStatusApproved),
		CustomerLabel: "Accepted",
		InternalLabel: "Approved by Customer",
		VisualClass:   VisualSuccess,
		Icon:          IconCheck,
		Stage:         StagePending,
		CustomerHint:  "Thanks! We are turning your quote into an order.",
	},
	Descriptor{
		Value:         string(QuoteStatusConverted),
		CustomerLabel: "Order Created",
		InternalLabel: "Converted",
		VisualClass:   VisualSuccess,
		Icon:          IconPackage,
		Stage:         StageComplete,
	},
	Descriptor{
		Value:         string(QuoteStatusRejected),
		CustomerLabel: "Not Available",
		InternalLabel: "Rejected",
		VisualClass:   VisualDanger,
		Icon:          IconX,
		Stage:         StageHalted,
		CustomerHint:  "We are unable to quote this request.",
	},
	Descriptor{
		Value:         string(QuoteStatusDeclined),
		CustomerLabel: "Declined",
		InternalLabel: "Declined by Customer",
		VisualClass:   VisualNeutral,
		Icon:          IconX,
		Stage:         StageHalted,
	},
)

// Quotes is the quote status taxonomy.
func Quotes() *Taxonomy { return quotes }

// ParseQuoteStatus maps a stored value to a known status or QuoteStatusUnknown.
func ParseQuoteStatus(raw string) QuoteStatus {
	if quotes.Known(raw) {
		return QuoteStatus(raw)
	}
	return QuoteStatusUnknown
}

func (s QuoteStatus) Known() bool { return quotes.Known(string(s)) }

func (s QuoteStatus) Descriptor() Descriptor { return quotes.Lookup(string(s)) }
