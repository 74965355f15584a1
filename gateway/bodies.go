package main

import (
	"shareit/src/config"
	"time"

	"github.com/go-playground/validator/v10"
)

// Request bodies the gateway validates before anything reaches the
// server. The server re-checks what it must (ordering, availability,
// ownership); presence and format stop here.

type CreateUserBody struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=200"`
}

type UpdateUserBody struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=200"`
}

type CreateItemBody struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *uint  `json:"request_id,omitempty"`
}

type UpdateItemBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateBookingBody struct {
	ItemID uint   `json:"item_id" validate:"required"`
	Start  string `json:"start" validate:"required,presentorfuture"`
	End    string `json:"end" validate:"required,presentorfuture"`
}

type CreateRequestBody struct {
	Description string `json:"description" validate:"required,max=1000"`
}

type CreateCommentBody struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// presentorfuture accepts a timestamp that is now or later; anything in
// the past never reaches the server.
var presentOrFuture validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	return !time.Now().After(datetime)
}
