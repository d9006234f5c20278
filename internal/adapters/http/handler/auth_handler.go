package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
)

// AuthHandler は認証系エンドポイントを担当します。
type AuthHandler struct {
	usecase auth.UseCase
}

// NewAuthHandler は AuthHandler を生成します。
func NewAuthHandler(usecase auth.UseCase) *AuthHandler {
	return &AuthHandler{usecase: usecase}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token              string `json:"token"`
	Role               string `json:"role"`
	Department         string `json:"department"`
	MustChangePassword bool   `json:"must_change_password"`
}

// Login は POST /api/auth/login を処理します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:              result.Token,
		Role:               string(result.Role),
		Department:         result.Department,
		MustChangePassword: result.MustChangePassword,
	})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ChangePassword は POST /api/auth/change-password を処理します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.usecase.ChangePassword(c.Request.Context(), identity, auth.ChangePasswordInput{
		NewPassword: req.NewPassword,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
