package models

import "shareit/src/types"

// Comment is post-rental feedback. Creation is gated by a completed
// APPROVED booking of the item by the author.
type Comment struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Text     string `gorm:"size:1000" json:"text,omitempty"`
	AuthorID uint   `gorm:"index" json:"author_id,omitempty"`
	ItemID   uint   `gorm:"index" json:"item_id,omitempty"`

	Author *User `gorm:"foreignKey:author_id" json:"author,omitempty"`
	Item   *Item `gorm:"foreignKey:item_id" json:"item,omitempty"`

	types.Timestamps
}
