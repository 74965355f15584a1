package models

import (
	"shareit/src/types"
	"time"
)

// Booking moves WAITING -> APPROVED or WAITING -> REJECTED, exactly once.
type Booking struct {
	ID       uint                `gorm:"primarykey" json:"id"`
	ItemID   uint                `gorm:"index" json:"item_id,omitempty"`
	BookerID uint                `gorm:"index" json:"booker_id,omitempty"`
	Start    time.Time           `gorm:"column:start_at;index" json:"start"`
	End      time.Time           `gorm:"column:end_at" json:"end"`
	Status   types.BookingStatus `json:"status,omitempty"`

	Item   *Item `gorm:"foreignKey:item_id" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:booker_id" json:"booker,omitempty"`

	types.Timestamps
}
