package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/employee"
)

// EmployeeHandler は管理者向けの社員管理エンドポイントを担当します。
type EmployeeHandler struct {
	usecase employee.UseCase
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(usecase employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{usecase: usecase}
}

type createEmployeeRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type employeeResponse struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
	CreatedAt     string `json:"created_at"`
}

func newEmployeeResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		UserID:        e.UserID,
		Email:         e.Email,
		Department:    e.Department,
		TotalDays:     e.TotalDays,
		UsedDays:      e.UsedDays,
		RemainingDays: e.RemainingDays,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create は POST /api/admin/employees を処理します。
func (h *EmployeeHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	created, err := h.usecase.CreateEmployee(c.Request.Context(), employee.Actor{
		ID:         identity.ID,
		Department: identity.Department,
	}, employee.CreateEmployeeInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newEmployeeResponse(created))
}

// List は GET /api/admin/employees を処理します。
func (h *EmployeeHandler) List(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	employees, err := h.usecase.ListEmployees(c.Request.Context(), employee.Actor{
		ID:         identity.ID,
		Department: identity.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, newEmployeeResponse(e))
	}

	c.JSON(http.StatusOK, responses)
}

// Delete は DELETE /api/admin/employees/:userId を処理します。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	if err := h.usecase.DeleteEmployee(c.Request.Context(), employee.Actor{
		ID:         identity.ID,
		Department: identity.Department,
	}, employee.DeleteEmployeeInput{
		UserID: c.Param("userId"),
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
