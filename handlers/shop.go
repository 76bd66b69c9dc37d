package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	notificationRepo "shearbook/database/repository/notification"
	shopRepo "shearbook/database/repository/shop"
	"shearbook/models"
	"shearbook/services/shop"
	"shearbook/utils"
)

// ShopHandler exposes owner accounts, shop management and employee
// registration.
type ShopHandler struct {
	Svc           shop.ShopService
	Notifications notificationRepo.NotificationRepository
	Logger        *zap.Logger
}

func NewShopHandler(svc shop.ShopService, notifications notificationRepo.NotificationRepository, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{Svc: svc, Notifications: notifications, Logger: logger}
}

// RegisterOwner handles POST /api/auth/register.
func (h *ShopHandler) RegisterOwner(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	owner, token, err := h.Svc.RegisterOwner(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"owner": owner, "token": token})
}

// Login handles POST /api/auth/login.
func (h *ShopHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	owner, token, err := h.Svc.AuthenticateOwner(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shop.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "authentication failed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner, "token": token})
}

// CreateShop handles POST /api/shops (authenticated).
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var s models.Shop
	if err := c.ShouldBindJSON(&s); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	s.OwnerID = c.GetString("ownerID")

	created, err := h.Svc.CreateShop(c.Request.Context(), &s)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create shop", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shop": created})
}

// GetShop handles GET /api/shops/:id.
func (h *ShopHandler) GetShop(c *gin.Context) {
	s, err := h.Svc.GetShop(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "shop not found", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": s})
}

// SetHours handles PUT /api/shops/:id/hours (authenticated).
func (h *ShopHandler) SetHours(c *gin.Context) {
	var req struct {
		SlotMinutes int                        `json:"slotMinutes" binding:"required"`
		Hours       map[string]models.DayHours `json:"hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.SetHours(c.Request.Context(), c.Param("id"), req.SlotMinutes, req.Hours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update hours", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ListEmployees handles GET /api/shops/:id/employees.
func (h *ShopHandler) ListEmployees(c *gin.Context) {
	employees, err := h.Svc.ListEmployees(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list employees", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// SetEmployeeSchedule handles PUT /api/shops/:id/employees/:employeeId/schedule.
func (h *ShopHandler) SetEmployeeSchedule(c *gin.Context) {
	var req struct {
		Schedule models.WeeklySchedule `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Svc.SetEmployeeSchedule(c.Request.Context(), c.Param("id"), c.Param("employeeId"), req.Schedule)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to update schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// CreateToken handles POST /api/shops/:id/registration-tokens (authenticated).
func (h *ShopHandler) CreateToken(c *gin.Context) {
	token, err := h.Svc.CreateRegistrationToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create token", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"registrationToken": token})
}

// RedeemToken handles POST /api/registration/redeem — a barber
// self-registers with a one-time invite.
func (h *ShopHandler) RedeemToken(c *gin.Context) {
	var req struct {
		Token    string                `json:"token" binding:"required"`
		Name     string                `json:"name" binding:"required"`
		Email    string                `json:"email,omitempty"`
		Phone    string                `json:"phone,omitempty"`
		Schedule models.WeeklySchedule `json:"schedule,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	emp, err := h.Svc.RedeemRegistrationToken(c.Request.Context(), req.Token, models.Employee{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Schedule: req.Schedule,
	})
	if err != nil {
		if errors.Is(err, shopRepo.ErrTokenConsumed) {
			utils.JSONError(c, http.StatusConflict, "token already used or expired", "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employee": emp})
}

// ListNotifications handles GET /api/shops/:id/notifications (authenticated).
func (h *ShopHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.Notifications.ListByShop(c.Request.Context(), c.Param("id"), 50)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list notifications", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// DailyStats handles GET /api/shops/:id/stats?from=&to= (authenticated).
func (h *ShopHandler) DailyStats(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "from and to query parameters are required")
		return
	}

	stats, err := h.Svc.DailyStats(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		h.Logger.Error("stats aggregation failed", zap.String("shopId", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to aggregate stats", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
