package models

import "shareit/src/types"

// Request is an open ask for an item nobody has listed yet. Items created
// in answer to it point back through their request_id.
type Request struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Description string `gorm:"size:1000" json:"description,omitempty"`
	RequestorID uint   `gorm:"index" json:"requestor_id,omitempty"`

	Requestor *User `gorm:"foreignKey:requestor_id" json:"requestor,omitempty"`

	types.Timestamps
}
