package model

import (
	"strings"
	"time"
)

// DonationItem is a listed, donor-owned object others may request.
type DonationItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	SelfPickup  bool      `json:"selfPickup"`
	CanDeliver  bool      `json:"canDeliver"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	DonorID     int64     `json:"donorId"`
}

// NewDonationItem holds the caller-supplied fields for a new listing.
// Status and CreatedAt are assigned by the store.
type NewDonationItem struct {
	Name        string
	Category    string
	Condition   string
	Description string
	Location    string
	ImageURL    string
	SelfPickup  bool
	CanDeliver  bool
	DonorID     int64
}

// Donation item statuses.
const (
	StatusAvailable = "available"
	StatusRequested = "requested"
	StatusReserved  = "reserved"
	StatusCompleted = "completed"
)

// Categories a donation item can be listed under.
var Categories = []string{
	"Furniture",
	"Clothing",
	"Electronics",
	"Household",
	"Toys",
	"Books",
	"Other",
}

// Conditions a donation item can be in.
var Conditions = []string{
	"New",
	"Like New",
	"Good",
	"Fair",
	"Needs Repair",
}

// ValidStatus reports whether status is one of the four lifecycle values.
func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusRequested, StatusReserved, StatusCompleted:
		return true
	}
	return false
}

// ValidCategory reports whether category is a known category (exact match).
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidCondition reports whether condition is a known condition (exact match).
func ValidCondition(condition string) bool {
	for _, c := range Conditions {
		if c == condition {
			return true
		}
	}
	return false
}

// NormalizeCategory maps a case-insensitive category spelling to its
// canonical form, or returns the input unchanged if unknown.
func NormalizeCategory(category string) string {
	for _, c := range Categories {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return category
}
