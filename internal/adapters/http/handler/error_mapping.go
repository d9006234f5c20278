package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/employee"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/leave"
)

// respondError はユースケース層のエラーを HTTP ステータスへ変換して返却します。
// 予期しないエラーは詳細を隠蔽し 500 として返します。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrInvalidPassword),
		errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInvalidDecision),
		errors.Is(err, leave.ErrInvalidID),
		errors.Is(err, leave.ErrNoRemainingBalance),
		errors.Is(err, leave.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, auth.ErrPasswordAlreadyChanged),
		errors.Is(err, employee.ErrForbidden),
		errors.Is(err, leave.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrRequestNotFound),
		errors.Is(err, leave.ErrEntitlementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, employee.ErrEmailAlreadyExists),
		errors.Is(err, leave.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
