package utils

import (
	"net/http"
	"shareit/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(0, 10))
	assert.NoError(t, ValidatePage(25, 1))

	assert.Error(t, ValidatePage(-1, 10))
	assert.Error(t, ValidatePage(0, 0))
	assert.Error(t, ValidatePage(0, -5))
	assert.Equal(t, types.KindValidation, types.KindOf(ValidatePage(-1, 10)))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(0, 10))
	assert.Equal(t, 0, PageOffset(7, 10))
	assert.Equal(t, 10, PageOffset(10, 10))
	// Offsets snap to the start of the page containing from.
	assert.Equal(t, 10, PageOffset(15, 10))
	assert.Equal(t, 20, PageOffset(20, 10))
	assert.Equal(t, 4, PageOffset(5, 2))
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrorStatus(types.NewNotFoundError("missing")))
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(types.NewValidationError("bad")))
	assert.Equal(t, http.StatusConflict, ErrorStatus(types.NewConflictError("dup")))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(assert.AnError))
}
