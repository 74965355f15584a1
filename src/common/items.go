package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"shareit/src/db"
	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/types"
	"shareit/src/utils"

	"gorm.io/gorm"
)

const searchCacheTTL = 60 * time.Second

// ItemDetails is an item decorated for display: its comment history and,
// for the owner, the nearest bookings around now.
type ItemDetails struct {
	models.Item
	LastBooking *models.Booking  `json:"last_booking,omitempty"`
	NextBooking *models.Booking  `json:"next_booking,omitempty"`
	Comments    []models.Comment `json:"comments"`
}

func findItem(tx *gorm.DB, id uint) (*models.Item, error) {
	var item models.Item
	err := tx.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func CreateItem(userID uint, params *types.CreateItemRequestBody) (*models.Item, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	if params.RequestID != nil {
		var request models.Request
		if err := dbc.First(&request, *params.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.NewNotFoundError(fmt.Sprintf("request with id %d not found", *params.RequestID))
			}
			return nil, err
		}
	}
	item := models.Item{
		Name:        params.Name,
		Description: params.Description,
		Available:   *params.Available,
		OwnerID:     userID,
		RequestID:   params.RequestID,
	}
	if err := dbc.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update. The owner never changes; a caller
// who is not the owner is told the item does not exist.
func UpdateItem(userID, id uint, params *types.UpdateItemRequestBody) (*models.Item, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	item, err := findItem(dbc, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, types.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
	}
	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.Available != nil {
		item.Available = *params.Available
	}
	if err := dbc.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func DeleteItem(userID, id uint) error {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return err
	}
	item, err := findItem(dbc, id)
	if err != nil {
		return err
	}
	if item.OwnerID != userID {
		return types.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
	}
	return dbc.Delete(item).Error
}

// GetItem returns an item with its comments. The last/next booking
// decoration is visible to the owner only.
func GetItem(userID, id uint) (*ItemDetails, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	item, err := findItem(dbc, id)
	if err != nil {
		return nil, err
	}

	details := ItemDetails{Item: *item, Comments: []models.Comment{}}
	err = dbc.
		Where(&models.Comment{ItemID: item.ID}).
		Order("created_at ASC").
		Find(&details.Comments).
		Error
	if err != nil {
		return nil, err
	}

	if item.OwnerID == userID {
		now := time.Now()
		last, err := lastBookingsForItems(dbc, []uint{item.ID}, now)
		if err != nil {
			return nil, err
		}
		if len(last) > 0 {
			details.LastBooking = &last[0]
		}
		next, err := nextBookingsForItems(dbc, []uint{item.ID}, now)
		if err != nil {
			return nil, err
		}
		if len(next) > 0 {
			details.NextBooking = &next[0]
		}
	}
	return &details, nil
}

// ListItems returns the caller's items, id ascending, each decorated with
// its nearest bookings and comments. Decoration is batched: three queries
// for the whole page instead of three per item.
func ListItems(userID uint, from, size int) ([]ItemDetails, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	if err := utils.ValidatePage(from, size); err != nil {
		return nil, err
	}

	items := []models.Item{}
	err := dbc.
		Where(&models.Item{OwnerID: userID}).
		Order("id ASC").
		Offset(utils.PageOffset(from, size)).
		Limit(size).
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []ItemDetails{}, nil
	}

	itemIDs := make([]uint, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	now := time.Now()
	lastBookings, err := lastBookingsForItems(dbc, itemIDs, now)
	if err != nil {
		return nil, err
	}
	nextBookings, err := nextBookingsForItems(dbc, itemIDs, now)
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	err = dbc.
		Where("item_id IN ?", itemIDs).
		Order("created_at ASC").
		Find(&comments).
		Error
	if err != nil {
		return nil, err
	}

	details := make([]ItemDetails, 0, len(items))
	for _, item := range items {
		d := ItemDetails{Item: item, Comments: []models.Comment{}}
		for i := range lastBookings {
			if lastBookings[i].ItemID == item.ID {
				d.LastBooking = &lastBookings[i]
				break
			}
		}
		for i := range nextBookings {
			if nextBookings[i].ItemID == item.ID {
				d.NextBooking = &nextBookings[i]
				break
			}
		}
		for _, comment := range comments {
			if comment.ItemID == item.ID {
				d.Comments = append(d.Comments, comment)
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// SearchItems matches text against name and description of available
// items, case-insensitively. Pages are cached best-effort; a dead cache
// never fails the search.
func SearchItems(userID uint, text string, from, size int) ([]models.Item, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	if text == "" {
		return []models.Item{}, nil
	}
	if err := utils.ValidatePage(from, size); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("items:search:%s:%d:%d", text, from, size)
	if rdb := lib.GetRedisClient(); rdb != nil {
		cached, err := rdb.Get(context.Background(), cacheKey).Result()
		if err == nil {
			items := []models.Item{}
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	items := []models.Item{}
	pattern := "%" + text + "%"
	err := dbc.
		Where("available = ?", true).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("id ASC").
		Offset(utils.PageOffset(from, size)).
		Limit(size).
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}

	if rdb := lib.GetRedisClient(); rdb != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := rdb.Set(context.Background(), cacheKey, payload, searchCacheTTL).Err(); err != nil {
				log.Printf("[redis] Failed to cache search results: %s\n", err.Error())
			}
		}
	}
	return items, nil
}

// AddComment posts feedback on an item. Only a booker whose APPROVED
// booking of the item has already ended may comment.
func AddComment(userID, itemID uint, params *types.CreateCommentRequestBody) (*models.Comment, error) {
	dbc := db.GetDb()
	user, err := findUser(dbc, userID)
	if err != nil {
		return nil, err
	}
	item, err := findItem(dbc, itemID)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	err = dbc.
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?",
			itemID, userID, types.BOOKING_APPROVED, time.Now()).
		Order("start_at DESC").
		First(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewValidationError(fmt.Sprintf("item with id %d can only be commented after a completed booking", itemID))
	}
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Text:     params.Text,
		AuthorID: userID,
		ItemID:   itemID,
	}
	if err := dbc.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.Author = user
	comment.Item = item
	return &comment, nil
}
