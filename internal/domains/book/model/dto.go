package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateBookRequest lists a copy by ISBN. Title, author and cover are
// resolved from the external catalog, not supplied by the client.
type CreateBookRequest struct {
	ISBN      string `json:"isbn" binding:"required"`
	Condition string `json:"condition" binding:"required"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			is.ISBN.Error("invalid ISBN format"),
		),
		validation.Field(&r.Condition,
			validation.Required.Error("condition is required"),
			validation.In(
				ConditionNew.String(),
				ConditionLikeNew.String(),
				ConditionGood.String(),
				ConditionFair.String(),
				ConditionPoor.String(),
			).Error("condition must be one of: new, like_new, good, fair, poor"),
		),
	)
}

// ListBooksQuery filters the public catalog of available copies.
type ListBooksQuery struct {
	Page        int  `form:"page"`
	Limit       int  `form:"limit"`
	ExcludeMine bool `form:"exclude_mine"`
}

func (q *ListBooksQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

func (q ListBooksQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, validation.Min(1)),
		validation.Field(&q.Limit, validation.Min(1), validation.Max(100)),
	)
}

// BookResponse is the public representation of a copy.
type BookResponse struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	ISBN       string     `json:"isbn"`
	Condition  string     `json:"condition"`
	CoverURL   *string    `json:"cover_url,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Status     BookStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToResponse converts the entity to its public representation.
func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		Title:      b.Title,
		Author:     b.Author,
		ISBN:       b.ISBN,
		Condition:  b.Condition.String(),
		CoverURL:   b.CoverURL,
		Categories: []string(b.Categories),
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}
