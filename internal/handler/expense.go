package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"expenza/internal/middleware"
	"expenza/internal/models"
	"expenza/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler serves the expense CRUD and summary endpoints. Every
// operation is scoped to the authenticated caller.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

type createExpenseReq struct {
	Title    string   `json:"title" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Date     string   `json:"date" binding:"required"`
}

type expenseResp struct {
	ID       uint    `json:"id"`
	UserID   uint    `json:"userId"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:       e.ID,
		UserID:   e.UserID,
		Title:    e.Title,
		Category: e.Category,
		Amount:   e.Amount,
		Date:     e.Date.Format("2006-01-02"),
	}
}

// ListExpenses returns all expenses owned by the caller, newest first.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var expenses []models.Expense
	if err := h.DB.
		Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to fetch expenses")
		return
	}

	items := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
	}

	c.JSON(http.StatusOK, items)
}

// AddExpense creates a new expense owned by the caller.
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "title, category, amount and date are required")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if req.Title == "" {
		util.Error(c, http.StatusBadRequest, "title is required")
		return
	}
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid category")
		return
	}
	if err := util.ValidateAmount(*req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, "amount must be a positive number")
		return
	}
	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	expense := models.Expense{
		UserID:   user.ID,
		Title:    req.Title,
		Category: req.Category,
		Amount:   *req.Amount,
		Date:     date,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to save expense")
		return
	}

	c.JSON(http.StatusCreated, toExpenseResp(&expense))
}

// DeleteExpense removes one of the caller's expenses. Rows belonging to
// other users are invisible here, so deleting them reports not found.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}

	res := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Expense{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// GetMonthlySummary returns per-category and per-day spending totals for a
// month (?month=YYYY-MM, default current).
func (h *ExpenseHandler) GetMonthlySummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	t, err := util.ValidateMonth(monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	startOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	var expenses []models.Expense
	if err := h.DB.
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, startOfMonth, endOfMonth).
		Order("date ASC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to fetch expenses")
		return
	}

	type categoryStat struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int     `json:"count"`
	}
	type dailyStat struct {
		Date  string  `json:"date"`
		Total float64 `json:"total"`
	}

	var total float64
	catMap := make(map[string]*categoryStat)
	dailyMap := make(map[string]*dailyStat)
	var dailyOrder []string

	for i := range expenses {
		e := &expenses[i]
		total += e.Amount

		cs, ok := catMap[e.Category]
		if !ok {
			cs = &categoryStat{Category: e.Category}
			catMap[e.Category] = cs
		}
		cs.Total += e.Amount
		cs.Count++

		dateKey := e.Date.Format("2006-01-02")
		ds, ok := dailyMap[dateKey]
		if !ok {
			ds = &dailyStat{Date: dateKey}
			dailyMap[dateKey] = ds
			dailyOrder = append(dailyOrder, dateKey)
		}
		ds.Total += e.Amount
	}

	byCategory := make([]categoryStat, 0, len(catMap))
	for _, cs := range catMap {
		byCategory = append(byCategory, *cs)
	}
	daily := make([]dailyStat, 0, len(dailyOrder))
	for _, k := range dailyOrder {
		daily = append(daily, *dailyMap[k])
	}

	c.JSON(http.StatusOK, gin.H{
		"month":      monthStr,
		"total":      total,
		"byCategory": byCategory,
		"daily":      daily,
	})
}
