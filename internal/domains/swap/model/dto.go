package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// RequestSwapRequest opens a swap against an available book. Omitting
// offered_book_id selects the point path.
type RequestSwapRequest struct {
	TargetBookID  uuid.UUID  `json:"target_book_id" binding:"required"`
	OfferedBookID *uuid.UUID `json:"offered_book_id,omitempty"`
}

func (r RequestSwapRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetBookID,
			validation.Required.Error("target_book_id is required"),
		),
		validation.Field(&r.OfferedBookID,
			validation.When(r.OfferedBookID != nil,
				validation.By(func(interface{}) error {
					if *r.OfferedBookID == r.TargetBookID {
						return validation.NewError("validation_same_book", "offered book cannot be the target book")
					}
					return nil
				}),
			),
		),
	)
}

// ShipSwapRequest records the carrier reference. The value is opaque;
// it is stored, never validated against a carrier.
type ShipSwapRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// SwapResponse is the public representation of a swap.
type SwapResponse struct {
	ID             uuid.UUID  `json:"id"`
	TargetBookID   uuid.UUID  `json:"target_book_id"`
	OfferedBookID  *uuid.UUID `json:"offered_book_id,omitempty"`
	GiverID        uuid.UUID  `json:"giver_id"`
	ReceiverID     uuid.UUID  `json:"receiver_id"`
	Status         SwapStatus `json:"status"`
	TrackingNumber *string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (s *Swap) ToResponse() SwapResponse {
	return SwapResponse{
		ID:             s.ID,
		TargetBookID:   s.TargetBookID,
		OfferedBookID:  s.OfferedBookID,
		GiverID:        s.GiverID,
		ReceiverID:     s.ReceiverID,
		Status:         s.Status,
		TrackingNumber: s.TrackingNumber,
		CreatedAt:      s.CreatedAt,
	}
}
