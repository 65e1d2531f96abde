package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contest represents a prize contest users can pay to enter
type Contest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"` // e.g., "Property", "Vehicle", "Electronics"
	ImageURL       string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	EntryFee       float64            `bson:"entryFee" json:"entryFee"`
	PrizeValue     float64            `bson:"prizeValue" json:"prizeValue"`
	StartDate      time.Time          `bson:"startDate" json:"startDate"`
	EndDate        time.Time          `bson:"endDate" json:"endDate"`
	MaxEntries     int                `bson:"maxEntries" json:"maxEntries"`
	CurrentEntries int                `bson:"currentEntries" json:"currentEntries"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedBy      string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsOpen reports whether the contest accepts entries at the given time
func (c *Contest) IsOpen(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartDate) && now.Before(c.EndDate)
}

// IsFull reports whether the contest has reached its entry capacity
func (c *Contest) IsFull() bool {
	return c.MaxEntries > 0 && c.CurrentEntries >= c.MaxEntries
}

// ContestRequest is the admin payload for creating or updating a contest
type ContestRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category" binding:"required"`
	ImageURL    string    `json:"imageUrl"`
	EntryFee    float64   `json:"entryFee" binding:"gte=0"`
	PrizeValue  float64   `json:"prizeValue" binding:"gte=0"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	MaxEntries  int       `json:"maxEntries" binding:"gte=0"`
	IsActive    bool      `json:"isActive"`
}

// Sort keys accepted by the contest listing
const (
	ContestSortEndDate        = "end_date"
	ContestSortPrizeValue     = "prizeValue"
	ContestSortEntryFee       = "entryFee"
	ContestSortCurrentEntries = "currentEntries"
)

// ContestFilter narrows and orders a contest listing
type ContestFilter struct {
	Category string
	Search   string
	SortBy   string
}
