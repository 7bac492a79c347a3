package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/captcha"
	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
	"dental-clinic-server/internal/utils"
)

// AppointmentStore is the persistence surface the handlers need. Satisfied by
// *store.AppointmentStore; tests substitute in-memory fakes.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	ListAll(ctx context.Context) ([]models.Appointment, error)
	ListByTimeframe(ctx context.Context, timeframe string) ([]models.Appointment, error)
	ListByRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, int, error)
	Confirm(ctx context.Context, id string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// AppointmentHandler handles the public intake path.
type AppointmentHandler struct {
	Store    AppointmentStore
	Verifier captcha.Verifier
	Cfg      *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(s AppointmentStore, v captcha.Verifier, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{Store: s, Verifier: v, Cfg: cfg}
}

// SubmitAppointmentRequest represents the public booking submission body.
// Required-field enforcement is config-driven, so no binding tags here.
type SubmitAppointmentRequest struct {
	RecaptchaToken string `json:"recaptchaToken"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Date           string `json:"date"`
	Service        string `json:"service"`
	Message        string `json:"message"`
	Language       string `json:"language"`
}

// SubmitAppointment handles a booking submission from the public website:
// CAPTCHA gate, then validation and normalization, then persistence.
func (h *AppointmentHandler) SubmitAppointment(c *gin.Context) {
	var req SubmitAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.CodeValidationError, "Invalid request payload: "+err.Error())
		return
	}

	if h.Cfg.RequireCaptcha {
		if strings.TrimSpace(req.RecaptchaToken) == "" {
			utils.BadRequest(c, utils.CodeRecaptchaRequired, "reCAPTCHA token is required")
			return
		}
		if err := h.Verifier.Verify(c.Request.Context(), req.RecaptchaToken, c.ClientIP()); err != nil {
			var verr *captcha.VerificationError
			if errors.As(err, &verr) {
				msg := "reCAPTCHA verification failed"
				if len(verr.Codes) > 0 {
					msg += ": " + strings.Join(verr.Codes, ", ")
				}
				utils.BadRequest(c, utils.CodeRecaptchaFailed, msg)
				return
			}
			utils.BadGateway(c, utils.CodeRecaptchaServiceError, "reCAPTCHA verification service unavailable")
			return
		}
	}

	appointment, errCode, errMsg := h.validateSubmission(&req)
	if errCode != "" {
		utils.BadRequest(c, errCode, errMsg)
		return
	}

	if err := h.Store.Create(c.Request.Context(), appointment); err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.BadRequest(c, utils.CodeValidationError, "Invalid appointment data: "+verr.Reason)
		case errors.Is(err, store.ErrDuplicate):
			utils.Conflict(c, "An appointment with these details already exists")
		default:
			utils.InternalServerError(c, "Failed to save appointment", err)
		}
		return
	}

	utils.Created(c, "Appointment request received. We will contact you shortly.", nil)
}

// validateSubmission checks the required fields and normalizes the payload
// into a record ready for persistence. Returns an error code and message
// when the submission is rejected.
func (h *AppointmentHandler) validateSubmission(req *SubmitAppointmentRequest) (*models.Appointment, string, string) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	language := strings.ToLower(strings.TrimSpace(req.Language))

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if phone == "" {
		missing = append(missing, "phone")
	}
	if h.Cfg.RequireLanguage && language == "" {
		missing = append(missing, "language")
	}
	if len(missing) > 0 {
		return nil, utils.CodeMissingFields, "Missing required fields: " + strings.Join(missing, ", ")
	}

	if !utils.IsValidEmail(email) {
		return nil, utils.CodeInvalidEmail, "Invalid email address format"
	}

	if language == "" {
		language = models.DefaultLanguage
	}
	if !models.IsValidLanguage(language) {
		return nil, utils.CodeInvalidLanguage,
			"Language must be one of: " + strings.Join(models.Languages, ", ")
	}

	var date *time.Time
	if d := strings.TrimSpace(req.Date); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return nil, utils.CodeInvalidDate, "Invalid appointment date, expected YYYY-MM-DD"
		}
		date = &parsed
	}

	service := strings.TrimSpace(req.Service)
	if service == "" {
		service = models.DefaultService
	}

	return &models.Appointment{
		Name:     utils.Truncate(name, models.MaxNameLength),
		Email:    utils.Truncate(email, models.MaxEmailLength),
		Phone:    utils.Truncate(phone, models.MaxPhoneLength),
		Date:     date,
		Service:  service,
		Message:  utils.Truncate(strings.TrimSpace(req.Message), models.MaxMessageLength),
		Language: language,
		Status:   models.StatusPending,
	}, "", ""
}
