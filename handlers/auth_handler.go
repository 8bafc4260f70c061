package handlers

import (
	"himpunan-cms/helper"
	"himpunan-cms/models"
	"himpunan-cms/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService     services.AuthService
	userService     services.UserService
	recoveryService services.RecoveryService
	Helper          *helper.HTTPHelper
}

func NewAuthHandler(
	authService services.AuthService,
	userService services.UserService,
	recoveryService services.RecoveryService,
) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		userService:     userService,
		recoveryService: recoveryService,
		Helper:          helper.NewHTTPHelper(),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, response)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	email, err := h.userService.VerifyEmail(c.Param("token"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, email)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	email, err := h.recoveryService.Request(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, email)
}

func (h *AuthHandler) VerifyForgotPassword(c *gin.Context) {
	var req models.VerifyForgotPasswordRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	email, err := h.recoveryService.Verify(c.Param("token"), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, email)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	if err := h.recoveryService.Reset(c.Param("token"), req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, req.Email)
}
