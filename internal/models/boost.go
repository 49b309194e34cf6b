package models

import "time"

type BoostStatus string

const (
	BoostPending  BoostStatus = "pending"
	BoostApproved BoostStatus = "approved"
	BoostRejected BoostStatus = "rejected"
)

// BoostRequest is a proof-of-payment submission elevating one group habit to
// the featured slot. It is created pending and transitions exactly once to
// approved or rejected by an admin.
type BoostRequest struct {
	ID         string      `json:"id"`
	HabitID    string      `json:"habit_id"`
	UserID     string      `json:"user_id"`
	ProofImage string      `json:"proof_image,omitempty"`
	Status     BoostStatus `json:"status"`
	Timestamp  time.Time   `json:"timestamp"`
}
