package models

import "shareit/src/types"

type Item struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
	OwnerID     uint   `gorm:"index" json:"owner_id,omitempty"`
	RequestID   *uint  `json:"request_id,omitempty"`

	Owner   *User    `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Request *Request `gorm:"foreignKey:request_id" json:"request,omitempty"`

	types.Timestamps
}
