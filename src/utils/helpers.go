package utils

import (
	"log"
	"net/http"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func ErrorStatus(err error) int {
	switch types.KindOf(err) {
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// AbortWithError writes the structured failure for err. Unclassified
// errors are logged and reported without detail.
func AbortWithError(ctx *gin.Context, err error) {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.AbortWithStatusJSON(status, gin.H{"error": "An unexpected error has occurred"})
		return
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func ValidatePage(from, size int) error {
	if from < 0 {
		return types.NewValidationError("from must be greater than or equal to 0")
	}
	if size <= 0 {
		return types.NewValidationError("size must be greater than 0")
	}
	return nil
}

// PageOffset keeps the page arithmetic of the original listings: the
// offset snaps to the start of the page containing from.
func PageOffset(from, size int) int {
	if from > 0 {
		return from / size * size
	}
	return 0
}
