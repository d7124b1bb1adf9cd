package model

import "time"

// ItemRequest is a requester's expression of interest in a donation item.
// Creating one forces the referenced item's status to "requested".
type ItemRequest struct {
	ID             int64     `json:"id"`
	Message        string    `json:"message,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UserID         int64     `json:"userId"`
	DonationItemID int64     `json:"donationItemId"`
}

// NewItemRequest holds the caller-supplied fields for a new request.
type NewItemRequest struct {
	Message        string
	UserID         int64
	DonationItemID int64
}

// Item request statuses. Only pending is produced by the current flows;
// accepted and rejected exist for donor-side triage.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)
