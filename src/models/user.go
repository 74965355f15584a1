package models

import "shareit/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200" json:"name,omitempty"`
	Email string `gorm:"size:200;uniqueIndex" json:"email,omitempty"`

	Items    []Item    `gorm:"foreignKey:owner_id" json:"items,omitempty"`
	Bookings []Booking `gorm:"foreignKey:booker_id" json:"bookings,omitempty"`

	types.Timestamps
}
