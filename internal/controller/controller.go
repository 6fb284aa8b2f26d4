// Package controller holds the helpers and middleware shared by the admin,
// user and notification controllers.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/rs/zerolog/log"
)

// ParseID reads a numeric path parameter, writing a 400 response when it is malformed.
func ParseID(ctx *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format", label)})
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalID reads a numeric query parameter. An absent parameter yields nil.
func ParseOptionalID(ctx *gin.Context, param, label string) (*uint, bool) {
	raw := ctx.Query(param)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format in query", label)})
		return nil, false
	}
	id := uint(val)
	return &id, true
}

// BindJSON binds and validates the request body, writing a 400 response with
// one detail line per failed field.
func BindJSON(ctx *gin.Context, op string, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("requestID", RequestIDFrom(ctx)).Msgf("%s: Failed to bind JSON", op)
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: bindingDetails(err)})
		return false
	}
	return true
}

// RespondError maps a service error onto the dashboard's error response.
func RespondError(ctx *gin.Context, op, message string, err error) {
	status := apperr.HTTPStatus(err)
	event := log.Error()
	if status < http.StatusInternalServerError {
		event = log.Warn()
	}
	event.Err(err).Str("requestID", RequestIDFrom(ctx)).Int("status", status).Msgf("%s: Service error", op)

	details := apperr.Details(err)
	if len(details) == 0 {
		details = []string{err.Error()}
	}
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: details})
}

func bindingDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: failed '%s=%s'", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		details = append(details, fmt.Sprintf("%s: failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return details
}
