package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
)

// respondError maps a typed domain error to an HTTP status and a
// machine-readable error body. Unexpected errors become a generic 500; the
// detail is logged server-side and never sent to the client.
func respondError(ctx *gin.Context, err error) {
	var validationErr *models.ValidationError
	var businessErr *models.BusinessRuleError
	var notFoundErr *models.ResourceNotFoundError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, models.APIError{
			Error:   validationErr.Message,
			Code:    models.ErrCodeValidation,
			Details: validationErr.Details,
		})
	case errors.As(err, &businessErr):
		ctx.JSON(http.StatusBadRequest, models.APIError{
			Error:   businessErr.Message,
			Code:    models.ErrCodeBusinessRule,
			Details: businessErr.Details,
		})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCodeNotFound, notFoundErr.Error()))
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Unexpected error handling request")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrCodeInternal, "Internal server error"))
	}
}
