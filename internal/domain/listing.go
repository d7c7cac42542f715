package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the lifecycle state of a marketplace listing
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingClaimed   ListingStatus = "claimed"
	ListingWithdrawn ListingStatus = "withdrawn"
)

// Listing is an open marketplace offer of a single owned instance.
// A given instance may back at most one active listing at a time.
// Claiming is a one-shot terminal transition; there are no partial or
// retractable claims.
type Listing struct {
	ID                uuid.UUID     `json:"id" db:"listing_id"`
	SellerUserID      string        `json:"seller_user_id" db:"seller_user_id"`
	ListedInstanceID  uuid.UUID     `json:"listed_instance_id" db:"listed_instance_id"`
	AskingDescription string        `json:"asking_description,omitempty" db:"asking_description"`
	Status            ListingStatus `json:"status" db:"status"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
}

// ListingView joins a listing with the listed reward and seller metadata
// for the public browse surface.
type ListingView struct {
	Listing    Listing          `json:"listing"`
	Definition RewardDefinition `json:"definition"`
	SellerName string           `json:"seller_name"`
}
