package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/handlers"
	"dental-clinic-server/internal/middleware"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory stand-in for the gorm-backed store. It reuses the
// store package's sentinels and timeframe arithmetic so handler error mapping
// is exercised against the real contract.
type fakeStore struct {
	appointments []models.Appointment
	createErr    error
	calls        int
	now          time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{now: time.Now()}
}

func (f *fakeStore) Create(_ context.Context, a *models.Appointment) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	if err := a.Validate(); err != nil {
		return &store.ValidationError{Reason: err.Error()}
	}
	a.ID = uuid.New().String()
	a.CreatedAt = f.now
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.Appointment, error) {
	f.calls++
	out := make([]models.Appointment, len(f.appointments))
	copy(out, f.appointments)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) ListByTimeframe(ctx context.Context, timeframe string) ([]models.Appointment, error) {
	f.calls++
	start, end, err := store.TimeframeBounds(timeframe, f.now)
	if err != nil {
		return nil, err
	}
	return f.inRange(start, end), nil
}

func (f *fakeStore) ListByRange(_ context.Context, startDate, endDate string) ([]models.Appointment, int, error) {
	f.calls++
	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return nil, 0, store.ErrInvalidDate
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return nil, 0, store.ErrInvalidDate
	}
	matched := f.inRange(start, store.EndOfDay(end))
	return matched, len(matched), nil
}

func (f *fakeStore) Confirm(_ context.Context, id string) (*models.Appointment, error) {
	f.calls++
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = models.StatusConfirmed
			result := f.appointments[i]
			return &result, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.calls++
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) inRange(start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, a := range f.appointments {
		if !a.CreatedAt.Before(start) && !a.CreatedAt.After(end) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// fakeVerifier records whether the external CAPTCHA call would have happened.
type fakeVerifier struct {
	err   error
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, _, _ string) error {
	f.calls++
	return f.err
}

func intakeConfig() *config.Config {
	return &config.Config{
		RequireCaptcha:  true,
		RequireLanguage: true,
	}
}

func intakeRouter(s handlers.AppointmentStore, v *fakeVerifier, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Sanitize())
	h := handlers.NewAppointmentHandler(s, v, cfg)
	router.POST("/api/appointments", h.SubmitAppointment)
	return router
}

const testAdminToken = "test-operator-secret"

func adminConfig() *config.Config {
	return &config.Config{
		AdminAuthMode: config.AdminAuthSharedSecret,
		AdminAPIToken: testAdminToken,
	}
}

func adminRouter(s handlers.AppointmentStore, cfg *config.Config) *gin.Engine {
	router := gin.New()
	h := handlers.NewAdminHandler(s, cfg)
	group := router.Group("/api/appointments")
	group.Use(middleware.AdminAuth(cfg))
	{
		group.GET("", h.ListAppointments)
		group.GET("/:timeframe", h.ListAppointmentsByTimeframe)
		group.GET("/:timeframe/:start/:end", h.ListAppointmentsByCustomRange)
		group.PUT("/:id/confirm", h.ConfirmAppointment)
		group.DELETE("/:id", h.DeleteAppointment)
	}
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, bearer string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf *bytes.Reader
	if body != "" {
		buf = bytes.NewReader([]byte(body))
	} else {
		buf = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a valid envelope: %v (body %q)", err, w.Body.String())
	}
	return w, env
}

func seedAppointment(f *fakeStore, createdAt time.Time) models.Appointment {
	a := models.Appointment{
		Name:     "Seed Patient",
		Email:    "seed@clinic.test",
		Phone:    "0123456789",
		Service:  models.DefaultService,
		Language: models.DefaultLanguage,
		Status:   models.StatusPending,
	}
	a.ID = uuid.New().String()
	a.CreatedAt = createdAt
	f.appointments = append(f.appointments, a)
	return a
}
