package common

import (
	"errors"
	"fmt"

	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/types"
	"shareit/src/utils"

	"gorm.io/gorm"
)

// RequestDetails is a request with the items listed in answer to it.
type RequestDetails struct {
	models.Request
	Items []models.Item `json:"items"`
}

func CreateRequest(userID uint, params *types.CreateRequestRequestBody) (*models.Request, error) {
	dbc := db.GetDb()
	user, err := findUser(dbc, userID)
	if err != nil {
		return nil, err
	}
	request := models.Request{
		Description: params.Description,
		RequestorID: userID,
	}
	if err := dbc.Create(&request).Error; err != nil {
		return nil, err
	}
	request.Requestor = user
	return &request, nil
}

// attachItems resolves the attached-items projection for a set of
// requests with a single query.
func attachItems(dbc *gorm.DB, requests []models.Request) ([]RequestDetails, error) {
	details := make([]RequestDetails, 0, len(requests))
	if len(requests) == 0 {
		return details, nil
	}
	requestIDs := make([]uint, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}
	items := []models.Item{}
	err := dbc.
		Where("request_id IN ?", requestIDs).
		Order("id ASC").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	for _, request := range requests {
		d := RequestDetails{Request: request, Items: []models.Item{}}
		for _, item := range items {
			if item.RequestID != nil && *item.RequestID == request.ID {
				d.Items = append(d.Items, item)
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// ListOwnRequests returns the caller's requests, newest first.
func ListOwnRequests(userID uint) ([]RequestDetails, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	requests := []models.Request{}
	err := dbc.
		Where(&models.Request{RequestorID: userID}).
		Order("created_at DESC").
		Find(&requests).
		Error
	if err != nil {
		return nil, err
	}
	return attachItems(dbc, requests)
}

// ListOtherRequests returns everyone else's requests, newest first.
func ListOtherRequests(userID uint, from, size int) ([]RequestDetails, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	if err := utils.ValidatePage(from, size); err != nil {
		return nil, err
	}
	requests := []models.Request{}
	err := dbc.
		Where("requestor_id <> ?", userID).
		Order("created_at DESC").
		Offset(utils.PageOffset(from, size)).
		Limit(size).
		Find(&requests).
		Error
	if err != nil {
		return nil, err
	}
	return attachItems(dbc, requests)
}

func GetRequest(userID, id uint) (*RequestDetails, error) {
	dbc := db.GetDb()
	if _, err := findUser(dbc, userID); err != nil {
		return nil, err
	}
	var request models.Request
	if err := dbc.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(fmt.Sprintf("request with id %d not found", id))
		}
		return nil, err
	}
	details, err := attachItems(dbc, []models.Request{request})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}
