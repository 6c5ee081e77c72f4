package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BookStatus is the resource-ledger state of a listed copy.
type BookStatus string

const (
	// BookStatusAvailable - listed and free to be requested.
	BookStatusAvailable BookStatus = "AVAILABLE"
	// BookStatusReserved - committed to exactly one open swap,
	// either as target or as offered collateral.
	BookStatusReserved BookStatus = "RESERVED"
	// BookStatusTransferred - its swap completed; terminal.
	BookStatusTransferred BookStatus = "TRANSFERRED"
)

func (s BookStatus) IsValid() bool {
	switch s {
	case BookStatusAvailable, BookStatusReserved, BookStatusTransferred:
		return true
	}
	return false
}

func (s BookStatus) String() string {
	return string(s)
}

// CanTransitionTo enforces the ledger lifecycle. RESERVED may revert to
// AVAILABLE only through a declined swap; TRANSFERRED never reverts.
func (s BookStatus) CanTransitionTo(next BookStatus) bool {
	switch s {
	case BookStatusAvailable:
		return next == BookStatusReserved
	case BookStatusReserved:
		return next == BookStatusTransferred || next == BookStatusAvailable
	}
	return false
}

// BookCondition represents valid physical conditions.
type BookCondition string

const (
	ConditionNew     BookCondition = "new"
	ConditionLikeNew BookCondition = "like_new"
	ConditionGood    BookCondition = "good"
	ConditionFair    BookCondition = "fair"
	ConditionPoor    BookCondition = "poor"
)

func (c BookCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

func (c BookCondition) String() string {
	return string(c)
}

// Book represents one physical copy owned by exactly one user.
// Title, author, cover and categories come from the catalog lookup at
// listing time; the cover URL is display-only.
type Book struct {
	ID         uuid.UUID      `json:"id"`
	OwnerID    uuid.UUID      `json:"owner_id"`
	Title      string         `json:"title"`
	Author     string         `json:"author"`
	ISBN       string         `json:"isbn"`
	Condition  BookCondition  `json:"condition"`
	CoverURL   *string        `json:"cover_url,omitempty"`
	Categories pq.StringArray `json:"categories,omitempty"`
	Status     BookStatus     `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// IsAvailable reports whether the copy can be requested or offered.
func (b *Book) IsAvailable() bool {
	return b.Status == BookStatusAvailable
}
