package types

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type BookingStatus string

const (
	BOOKING_WAITING  BookingStatus = "WAITING"
	BOOKING_APPROVED BookingStatus = "APPROVED"
	BOOKING_REJECTED BookingStatus = "REJECTED"
)

// BookingState filters booking listings. Time-based states are evaluated
// against "now" at query time, not stored on the row.
type BookingState string

const (
	STATE_ALL      BookingState = "ALL"
	STATE_CURRENT  BookingState = "CURRENT"
	STATE_PAST     BookingState = "PAST"
	STATE_FUTURE   BookingState = "FUTURE"
	STATE_WAITING  BookingState = "WAITING"
	STATE_REJECTED BookingState = "REJECTED"
)

// ParseBookingState matches the enum name exactly. Unknown strings are a
// validation failure, never a silent fallback to ALL.
func ParseBookingState(s string) (BookingState, error) {
	switch BookingState(s) {
	case STATE_ALL, STATE_CURRENT, STATE_PAST, STATE_FUTURE, STATE_WAITING, STATE_REJECTED:
		return BookingState(s), nil
	}
	return "", NewValidationError(fmt.Sprintf("Unknown state: %s", s))
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PageQuery struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

type CreateUserRequestBody struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"required,email,max=200"`
}

type UpdateUserRequestBody struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Email *string `json:"email,omitempty" binding:"omitempty,email,max=200"`
}

type CreateItemRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *uint  `json:"request_id,omitempty"`
}

type UpdateItemRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateBookingRequestBody struct {
	ItemID uint   `json:"item_id" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
}

type CreateRequestRequestBody struct {
	Description string `json:"description" binding:"required,max=1000"`
}

type CreateCommentRequestBody struct {
	Text string `json:"text" binding:"required,max=1000"`
}
