package entities

import "time"

// ProofStatus is the verification outcome of an uploaded payment proof.
type ProofStatus string

const (
	ProofStatusPending  ProofStatus = "pending"
	ProofStatusApproved ProofStatus = "approved"
	ProofStatusRejected ProofStatus = "rejected"
)

// PaymentProof is the customer's proof of a bank transfer, stored in the
// private proofs bucket. Only the storage path is kept on the order; the
// file is served through short-lived signed URLs.
type PaymentProof struct {
	Bucket     string      `json:"bucket"`
	Path       string      `json:"path"`
	Status     ProofStatus `json:"status"`
	UploadedAt time.Time   `json:"uploaded_at"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

// AwaitingVerification reports whether an unexpired proof is pending review.
func (p *PaymentProof) AwaitingVerification(now time.Time) bool {
	if p == nil || p.Status != ProofStatusPending {
		return false
	}
	return p.ExpiresAt.IsZero() || now.Before(p.ExpiresAt)
}
