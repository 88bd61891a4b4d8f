package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/internal/usecase/passwordreset"
	"foodnest/pkg/utils"
)

// forgotPasswordMessage is returned regardless of whether the email belongs
// to an account.
const forgotPasswordMessage = "If the email exists, a reset code has been sent"

type PasswordResetHandler struct {
	service *passwordreset.Service
}

func NewPasswordResetHandler(service *passwordreset.Service) *PasswordResetHandler {
	return &PasswordResetHandler{service: service}
}

func (h *PasswordResetHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/forgot-password", h.RequestCode)
		authGroup.POST("/verify-reset-code", h.VerifyCode)
		authGroup.POST("/reset-password", h.CompleteReset)
	}
}

func (h *PasswordResetHandler) RequestCode(c *gin.Context) {
	var req passwordreset.RequestCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.RequestCode(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, forgotPasswordMessage, nil)
}

func (h *PasswordResetHandler) VerifyCode(c *gin.Context) {
	var req passwordreset.VerifyCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.VerifyCode(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Code verified", nil)
}

func (h *PasswordResetHandler) CompleteReset(c *gin.Context) {
	var req passwordreset.CompleteResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CompleteReset(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}
