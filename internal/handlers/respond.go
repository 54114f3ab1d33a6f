package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	"github.com/schoolstate/sas_backend/internal/middleware"
)

// statusForCode maps stable failure codes to HTTP statuses. Clients key off
// the code; the status is for generic HTTP tooling.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeBadUserInput, apperrors.CodeFromValueNotPositive:
		return http.StatusBadRequest
	case apperrors.CodeInvalidPassword:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied,
		apperrors.CodeTransferSenderRestricted,
		apperrors.CodeTransferReceiverRestricted,
		apperrors.CodeCardBlocked:
		return http.StatusForbidden
	case apperrors.CodeUserNotFound,
		apperrors.CodeAccountNotFound,
		apperrors.CodeCardNotFound,
		apperrors.CodeProductNotFound,
		apperrors.CodeVoteNotFound,
		apperrors.CodeDraftNotFound,
		apperrors.CodeCurrencyNotFound,
		apperrors.CodeEmploymentNotFound,
		apperrors.CodeWorktimeNotFound:
		return http.StatusNotFound
	case apperrors.CodeBalanceTooLow,
		apperrors.CodeCardAlreadyRegistered,
		apperrors.CodeCardAlreadyAssigned,
		apperrors.CodeCardAlreadyUnassigned,
		apperrors.CodeCardAlreadyBlocked,
		apperrors.CodeCardAlreadyUnblocked,
		apperrors.CodeUserAlreadyHasCard,
		apperrors.CodeVoteEnded,
		apperrors.CodeVoteAlreadyCasted,
		apperrors.CodeWorktimeAlreadyPaid:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the coded error payload for a service failure.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("unexpected error", err)
	}
	status := statusForCode(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		// Internals stay in the log, not in the response body.
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("request failed", "error", appErr.Error())
		message = "internal error"
	}
	c.JSON(status, gin.H{"code": appErr.Code, "error": message})
}

// respondBindError writes the payload for a request that failed binding or
// validation before reaching any service.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeBadUserInput, "error": "invalid request format: " + err.Error()})
}

// callerOrAbort extracts the authenticated caller set by the auth
// middleware.
func callerOrAbort(c *gin.Context) (domain.UserSignature, bool) {
	sig, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodePermissionDenied, "error": "unauthorized"})
		return sig, false
	}
	return sig, true
}
