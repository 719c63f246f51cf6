package request

type DeclineQuoteRequest struct {
	Reason string `json:"reason"`
}
