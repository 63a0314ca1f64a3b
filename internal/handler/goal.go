package handler

import (
	"math"
	"net/http"
	"time"

	"expenza/internal/middleware"
	"expenza/internal/models"
	"expenza/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalHandler serves the per-month spending goal endpoints.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type setGoalReq struct {
	Month  string   `json:"month"`
	Amount *float64 `json:"amount" binding:"required"`
}

// goalResp carries the stored goal plus progress against this month's
// spending, mirroring what the goal tracker screen needs in one call.
type goalResp struct {
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

func (h *GoalHandler) buildResp(userID uint, month string, amount float64) (goalResp, error) {
	t, err := util.ValidateMonth(month)
	if err != nil {
		return goalResp{}, err
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var spent float64
	err = h.DB.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error
	if err != nil {
		return goalResp{}, err
	}

	resp := goalResp{
		Month:     month,
		Amount:    amount,
		Spent:     spent,
		Remaining: math.Max(amount-spent, 0),
	}
	if amount > 0 {
		resp.Percentage = math.Min(spent/amount*100, 100)
	}
	return resp, nil
}

// GetGoal returns the goal for ?month=YYYY-MM (default current month) with
// progress. An unset goal reads back with amount 0.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	var goal models.Goal
	err := h.DB.Where("user_id = ? AND month = ?", user.ID, month).First(&goal).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		util.Error(c, http.StatusInternalServerError, "failed to fetch goal")
		return
	}

	resp, err := h.buildResp(user.ID, month, goal.Amount)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to fetch goal")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetGoal upserts the goal amount for a month (default current month).
func (h *GoalHandler) SetGoal(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req setGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "amount is required")
		return
	}
	if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) || *req.Amount < 0 {
		util.Error(c, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}
	if req.Month == "" {
		req.Month = time.Now().Format("2006-01")
	}
	if _, err := util.ValidateMonth(req.Month); err != nil {
		util.Error(c, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	goal := models.Goal{
		UserID: user.ID,
		Month:  req.Month,
		Amount: *req.Amount,
	}
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to save goal")
		return
	}

	resp, err := h.buildResp(user.ID, req.Month, *req.Amount)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to save goal")
		return
	}
	c.JSON(http.StatusOK, resp)
}
