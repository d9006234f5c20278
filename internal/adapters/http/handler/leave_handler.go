package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/leave"
)

const dateLayout = "2006-01-02"

// LeaveHandler は休暇申請と決裁のエンドポイントを担当します。
type LeaveHandler struct {
	usecase leave.UseCase
}

// NewLeaveHandler は LeaveHandler を生成します。
func NewLeaveHandler(usecase leave.UseCase) *LeaveHandler {
	return &LeaveHandler{usecase: usecase}
}

type submitLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type decideLeaveRequest struct {
	Status string `json:"status"`
}

type leaveRequestResponse struct {
	ID               string  `json:"id"`
	EmployeeUserID   string  `json:"employee_user_id"`
	EmployeeEmail    string  `json:"employee_email,omitempty"`
	Department       string  `json:"department"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Days             int     `json:"days"`
	Status           string  `json:"status"`
	DecidedByAdminID *string `json:"decided_by_admin_id,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type balanceResponse struct {
	TotalDays     int `json:"total_days"`
	UsedDays      int `json:"used_days"`
	RemainingDays int `json:"remaining_days"`
}

func newLeaveRequestResponse(r *leave.Request) leaveRequestResponse {
	resp := leaveRequestResponse{
		ID:               r.ID,
		EmployeeUserID:   r.EmployeeUserID,
		EmployeeEmail:    r.EmployeeEmail,
		Department:       r.Department,
		StartDate:        r.StartDate.Format(dateLayout),
		EndDate:          r.EndDate.Format(dateLayout),
		Days:             r.Days,
		Status:           string(r.Status),
		DecidedByAdminID: r.DecidedByAdminID,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		decidedAt := r.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func actorFromIdentity(c *gin.Context) (leave.Actor, bool) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return leave.Actor{}, false
	}
	return leave.Actor{ID: identity.ID, Department: identity.Department}, true
}

// Submit は POST /api/leaves を処理します。
func (h *LeaveHandler) Submit(c *gin.Context) {
	actor, ok := actorFromIdentity(c)
	if !ok {
		return
	}

	var req submitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid start_date"})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid end_date"})
		return
	}

	created, err := h.usecase.Submit(c.Request.Context(), actor, leave.SubmitInput{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newLeaveRequestResponse(created))
}

// ListMine は GET /api/leaves を処理します。
func (h *LeaveHandler) ListMine(c *gin.Context) {
	actor, ok := actorFromIdentity(c)
	if !ok {
		return
	}

	requests, err := h.usecase.ListMyRequests(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLeaveRequestResponses(requests))
}

// ListDepartment は GET /api/leaves/admin を処理します。
func (h *LeaveHandler) ListDepartment(c *gin.Context) {
	actor, ok := actorFromIdentity(c)
	if !ok {
		return
	}

	requests, err := h.usecase.ListDepartmentRequests(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLeaveRequestResponses(requests))
}

// Decide は PUT /api/leaves/admin/:id を処理します。
func (h *LeaveHandler) Decide(c *gin.Context) {
	actor, ok := actorFromIdentity(c)
	if !ok {
		return
	}

	var req decideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	decided, err := h.usecase.Decide(c.Request.Context(), actor, leave.DecideInput{
		RequestID: c.Param("id"),
		Decision:  leave.Status(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLeaveRequestResponse(decided))
}

// Balance は GET /api/employees/me を処理します。
func (h *LeaveHandler) Balance(c *gin.Context) {
	actor, ok := actorFromIdentity(c)
	if !ok {
		return
	}

	entitlement, err := h.usecase.Balance(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, balanceResponse{
		TotalDays:     entitlement.TotalDays,
		UsedDays:      entitlement.UsedDays,
		RemainingDays: entitlement.RemainingDays,
	})
}

func newLeaveRequestResponses(requests []*leave.Request) []leaveRequestResponse {
	responses := make([]leaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, newLeaveRequestResponse(r))
	}
	return responses
}
