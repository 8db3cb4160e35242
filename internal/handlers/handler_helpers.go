package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrLocked):
		return http.StatusLocked
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the error response for err. Client errors return
// the error text; server errors only return fallbackMsg.
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUserID returns the caller's user id or writes 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// requireCompanyID returns the company id path parameter or writes 400.
func requireCompanyID(c *gin.Context) (string, bool) {
	companyID := c.Param("company_id")
	if companyID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Company ID missing from path")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID required in path"})
		return "", false
	}
	return companyID, true
}

// callerAndCompany combines requireUserID and requireCompanyID.
func callerAndCompany(c *gin.Context) (userID, companyID string, ok bool) {
	if userID, ok = requireUserID(c); !ok {
		return "", "", false
	}
	if companyID, ok = requireCompanyID(c); !ok {
		return "", "", false
	}
	return userID, companyID, true
}

// optionalToken turns an empty query token into nil.
func optionalToken(token string) *string {
	if token == "" {
		return nil
	}
	return &token
}
