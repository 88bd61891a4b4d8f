package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainFood "foodnest/internal/domain/food"
	domainPrep "foodnest/internal/domain/prep"
	domainTeam "foodnest/internal/domain/team"
	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	"foodnest/internal/middleware"
	appErrors "foodnest/pkg/errors"
	"foodnest/pkg/utils"
)

// invalidCodeMessage is the single public message for every non-throttle
// reset-code failure. Callers cannot tell a missing code from an expired or
// mismatched one.
const invalidCodeMessage = "Invalid or expired code"

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrRequestAlreadyExists),
		errors.Is(err, domainTeam.ErrTeamAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserDisabled),
		errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainUser.ErrRequestNotFound),
		errors.Is(err, domainFood.ErrFoodNotFound),
		errors.Is(err, domainFood.ErrComboNotFound),
		errors.Is(err, domainPrep.ErrRequestNotFound),
		errors.Is(err, domainTeam.ErrTeamNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrUnknownAccount):
		utils.ErrorResponse(c, http.StatusNotFound, "No account found for this email")
	case errors.Is(err, appErrors.ErrNoActiveCode),
		errors.Is(err, appErrors.ErrCodeExpired),
		errors.Is(err, appErrors.ErrCodeMismatch):
		utils.ErrorResponse(c, http.StatusBadRequest, invalidCodeMessage)
	case errors.Is(err, appErrors.ErrTooManyAttempts):
		utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many attempts, request a new code")
	case errors.Is(err, appErrors.ErrInvalidUserRole),
		errors.Is(err, domainPrep.ErrInvalidStatus):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case "FORBIDDEN":
				utils.ErrorResponse(c, http.StatusForbidden, appErr.Message)
			case "FILE_TOO_LARGE":
				utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, appErr.Message)
			case "INVALID_TRANSITION":
				utils.ErrorResponse(c, http.StatusConflict, appErr.Message)
			case "ITEM_NOT_FOUND", "INVALID_MEMBER", "INVALID_COOK":
				utils.ErrorResponse(c, http.StatusUnprocessableEntity, appErr.Message)
			default:
				utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			}
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseIDParam reads a UUID path parameter, writing the 400 itself on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return parsed, true
}

// currentUserID reads the authenticated user ID placed by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Invalid user identifier")
		return uuid.Nil, false
	}
	return id, true
}
