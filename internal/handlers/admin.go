package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
	"dental-clinic-server/internal/utils"
)

// AdminHandler handles the moderation endpoints over stored appointments.
type AdminHandler struct {
	Store AppointmentStore
	Cfg   *config.Config
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(s AppointmentStore, cfg *config.Config) *AdminHandler {
	return &AdminHandler{Store: s, Cfg: cfg}
}

// ListAppointments returns every appointment, newest first.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.Store.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments", err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// ListAppointmentsByTimeframe returns appointments within a named window
// (today, week, month, year).
func (h *AdminHandler) ListAppointmentsByTimeframe(c *gin.Context) {
	timeframe := c.Param("timeframe")
	appointments, err := h.Store.ListByTimeframe(c.Request.Context(), timeframe)
	if err != nil {
		if errors.Is(err, store.ErrInvalidTimeframe) {
			utils.BadRequest(c, utils.CodeInvalidTimeframe,
				"Invalid timeframe, expected one of: today, week, month, year")
			return
		}
		utils.InternalServerError(c, "Failed to fetch appointments", err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// ListAppointmentsByCustomRange returns appointments between two calendar
// dates along with their count. Served at /custom/:start/:end; the route
// shares the :timeframe wildcard, so the first segment is checked here.
func (h *AdminHandler) ListAppointmentsByCustomRange(c *gin.Context) {
	if c.Param("timeframe") != "custom" {
		utils.NotFound(c, "Route not found")
		return
	}
	startDate := c.Param("start")
	endDate := c.Param("end")

	appointments, count, err := h.Store.ListByRange(c.Request.Context(), startDate, endDate)
	if err != nil {
		if errors.Is(err, store.ErrInvalidDate) {
			utils.BadRequest(c, utils.CodeInvalidDate, "Invalid date range, expected YYYY-MM-DD dates")
			return
		}
		utils.InternalServerError(c, "Failed to fetch appointments", err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", gin.H{
		"count":        count,
		"appointments": appointments,
	})
}

// ConfirmAppointment marks an appointment as confirmed.
func (h *AdminHandler) ConfirmAppointment(c *gin.Context) {
	id := c.Param("id")
	appointment, err := h.Store.Confirm(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
			return
		}
		utils.InternalServerError(c, "Failed to confirm appointment", err)
		return
	}
	utils.Success(c, "Appointment confirmed successfully", appointment)
}

// DeleteAppointment removes an appointment record.
func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
			return
		}
		utils.InternalServerError(c, "Failed to delete appointment", err)
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

// AuthHandler issues operator tokens for the signed-token auth variant.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the admin login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an operator and returns a signed bearer token.
// Rejections are uniform 401s so the endpoint cannot be used to probe
// for registered accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var admin models.Admin
	if err := h.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
		utils.InternalServerError(c, "Failed to look up admin account", err)
		return
	}

	if !admin.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Email, h.Cfg.JWTSecret, h.Cfg.JWTExpirationMinutes)
	if err != nil {
		utils.InternalServerError(c, "Failed to issue token", err)
		return
	}

	utils.Success(c, "Login successful", gin.H{"token": token})
}
