package common

import (
	"errors"
	"fmt"
	"time"

	"shareit/src/config"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/types"
	"shareit/src/utils"

	"gorm.io/gorm"
)

// CreateBooking places a WAITING booking on an available item. An owner
// booking their own item is told the item does not exist.
func CreateBooking(userID uint, params *types.CreateBookingRequestBody) (*models.Booking, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}

	var item models.Item
	if err := dbc.First(&item, params.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(fmt.Sprintf("item with id %d not found", params.ItemID))
		}
		return nil, err
	}
	if !item.Available {
		return nil, types.NewValidationError(fmt.Sprintf("item with id %d is not available for booking", item.ID))
	}
	if item.OwnerID == userID {
		return nil, types.NewNotFoundError(fmt.Sprintf("item with id %d not found", params.ItemID))
	}

	start, err := time.Parse(config.TIME_PARSE_FORMAT, params.Start)
	if err != nil {
		return nil, types.NewValidationError(fmt.Sprintf("could not parse start date: %s", params.Start))
	}
	end, err := time.Parse(config.TIME_PARSE_FORMAT, params.End)
	if err != nil {
		return nil, types.NewValidationError(fmt.Sprintf("could not parse end date: %s", params.End))
	}
	// Equal instants are rejected too.
	if !start.Before(end) {
		return nil, types.NewValidationError("booking start must be strictly before its end")
	}

	booking := models.Booking{
		ItemID:   item.ID,
		BookerID: userID,
		Start:    start,
		End:      end,
		Status:   types.BOOKING_WAITING,
	}
	if err := dbc.Create(&booking).Error; err != nil {
		return nil, err
	}
	booking.Item = &item
	return &booking, nil
}

// DecideBooking approves or rejects a WAITING booking. Only the owner of
// the booked item may decide; anyone else sees "not found". The status
// flip is a conditional update so that of two racing decisions exactly
// one wins and the other fails as already decided.
func DecideBooking(userID, bookingID uint, approved bool) (*models.Booking, error) {
	dbc := db.GetDb()
	var booking models.Booking
	err := dbc.Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Preload("Item").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError(fmt.Sprintf("booking with id %d not found", bookingID))
			}
			return err
		}
		if booking.Item == nil || booking.Item.OwnerID != userID {
			return types.NewNotFoundError(fmt.Sprintf("booking with id %d not found", bookingID))
		}

		status := types.BOOKING_APPROVED
		if !approved {
			status = types.BOOKING_REJECTED
		}
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", bookingID, types.BOOKING_WAITING).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NewValidationError("booking has already been decided")
		}
		booking.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBooking returns a booking to its booker or to the item owner; anyone
// else sees "not found".
func GetBooking(userID, bookingID uint) (*models.Booking, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := dbc.Preload("Item").Preload("Booker").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(fmt.Sprintf("booking with id %d not found", bookingID))
		}
		return nil, err
	}
	if booking.BookerID != userID && (booking.Item == nil || booking.Item.OwnerID != userID) {
		return nil, types.NewNotFoundError(fmt.Sprintf("booking with id %d not found", bookingID))
	}
	return &booking, nil
}

func applyStateFilter(q *gorm.DB, state types.BookingState, now time.Time) *gorm.DB {
	switch state {
	case types.STATE_ALL:
		return q
	case types.STATE_CURRENT:
		return q.Where("start_at < ? AND end_at > ?", now, now)
	case types.STATE_PAST:
		return q.Where("end_at < ?", now)
	case types.STATE_FUTURE:
		return q.Where("start_at > ?", now)
	case types.STATE_WAITING:
		return q.Where("bookings.status = ?", types.BOOKING_WAITING)
	case types.STATE_REJECTED:
		// Exact status match only; APPROVED bookings are reachable
		// through the time-based states.
		return q.Where("bookings.status = ?", types.BOOKING_REJECTED)
	}
	return q
}

// ListBookerBookings returns the caller's own bookings filtered by state,
// newest start first.
func ListBookerBookings(userID uint, stateIn string, from, size int) ([]models.Booking, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	state, err := types.ParseBookingState(stateIn)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidatePage(from, size); err != nil {
		return nil, err
	}

	q := dbc.Model(&models.Booking{}).Where(&models.Booking{BookerID: userID})
	q = applyStateFilter(q, state, time.Now())

	bookings := []models.Booking{}
	err = q.
		Order("start_at DESC").
		Offset(utils.PageOffset(from, size)).
		Limit(size).
		Preload("Item").
		Preload("Booker").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListOwnerBookings returns bookings placed on any of the caller's items,
// filtered by state, newest start first.
func ListOwnerBookings(userID uint, stateIn string, from, size int) ([]models.Booking, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	state, err := types.ParseBookingState(stateIn)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidatePage(from, size); err != nil {
		return nil, err
	}

	q := dbc.Model(&models.Booking{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", userID)
	q = applyStateFilter(q, state, time.Now())

	bookings := []models.Booking{}
	err = q.
		Order("start_at DESC").
		Offset(utils.PageOffset(from, size)).
		Limit(size).
		Preload("Item").
		Preload("Booker").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// lastBookingsForItems returns APPROVED bookings already started, newest
// start first, for the given items. The first row per item is that item's
// "last" booking.
func lastBookingsForItems(dbc *gorm.DB, itemIDs []uint, now time.Time) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := dbc.
		Model(&models.Booking{}).
		Where("item_id IN ? AND start_at < ? AND status = ?", itemIDs, now, types.BOOKING_APPROVED).
		Order("start_at DESC").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// nextBookingsForItems returns APPROVED bookings not yet started, earliest
// start first, for the given items.
func nextBookingsForItems(dbc *gorm.DB, itemIDs []uint, now time.Time) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := dbc.
		Model(&models.Booking{}).
		Where("item_id IN ? AND start_at > ? AND status = ?", itemIDs, now, types.BOOKING_APPROVED).
		Order("start_at ASC").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
