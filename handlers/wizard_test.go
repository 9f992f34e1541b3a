// File: handlers/wizard_test.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pristine/models"
	"pristine/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubWizard scripts WizardService responses for handler tests.
type stubWizard struct {
	session *models.WizardSession
	result  *models.PaymentResult
	err     error
}

func (s *stubWizard) Start(ctx context.Context, userID string) (*models.WizardSession, error) {
	return s.session, s.err
}

func (s *stubWizard) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.session, s.err
}

func (s *stubWizard) SelectService(ctx context.Context, sessionID, serviceID string) (*models.WizardSession, error) {
	return s.session, s.err
}

func (s *stubWizard) SubmitDetails(ctx context.Context, sessionID string, input *models.BookingDetailsInput) (*models.WizardSession, error) {
	return s.session, s.err
}

func (s *stubWizard) SubmitPayment(ctx context.Context, sessionID string, req models.PaymentRequest) (*models.WizardSession, *models.PaymentResult, error) {
	return s.session, s.result, s.err
}

func (s *stubWizard) CompleteRedirect(ctx context.Context, bookingID string) (*models.Booking, error) {
	return nil, s.err
}

func (s *stubWizard) FailRedirect(ctx context.Context, bookingID, reason string) error {
	return s.err
}

func (s *stubWizard) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.session, s.err
}

func (s *stubWizard) Cancel(ctx context.Context, sessionID string) error {
	return s.err
}

func wizardRouter(svc booking.WizardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWizardHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/wizard", h.Start)
	r.GET("/wizard/:sessionID", h.Get)
	r.PUT("/wizard/:sessionID/service", h.SelectService)
	r.PUT("/wizard/:sessionID/details", h.SubmitDetails)
	r.POST("/wizard/:sessionID/payment", h.SubmitPayment)
	r.POST("/wizard/:sessionID/back", h.Back)
	return r
}

func TestWizardHandlerStart(t *testing.T) {
	svc := &stubWizard{session: &models.WizardSession{SessionID: "sess-1", Step: models.StepSelectService}}
	r := wizardRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wizard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Session models.WizardSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sess-1", body.Session.SessionID)
}

func TestWizardHandlerValidationErrorShape(t *testing.T) {
	svc := &stubWizard{err: &booking.ValidationError{
		Fields:   map[string]string{"bookingTime": "booking time must be between 08:00 and 20:00"},
		Warnings: []string{"Booking time must be between 08:00 and 20:00; it has been reset to 08:00."},
	}}
	r := wizardRouter(svc)

	payload := `{"bookingDate":"2026-10-01","bookingTime":"23:00","phone":"0781234567","addressOption":"my-address"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/wizard/sess-1/details", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Message string `json:"message"`
		Data    struct {
			Fields    map[string]string          `json:"fields"`
			Warnings  []string                   `json:"warnings"`
			Corrected models.BookingDetailsInput `json:"corrected"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Data.Fields, "bookingTime")
	require.Len(t, body.Data.Warnings, 1)
}

func TestWizardHandlerStepErrorIsConflict(t *testing.T) {
	svc := &stubWizard{err: booking.NewStepError("payment can only be submitted from the payment step")}
	r := wizardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wizard/sess-1/payment", strings.NewReader(`{"paymentMethod":"cash"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWizardHandlerInFlightIsConflict(t *testing.T) {
	svc := &stubWizard{err: &booking.SessionInFlightError{SessionID: "sess-1"}}
	r := wizardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/wizard/sess-1/service", strings.NewReader(`{"serviceId":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWizardHandlerMissingSessionIsNotFound(t *testing.T) {
	svc := &stubWizard{err: booking.ErrSessionNotFound}
	r := wizardRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wizard/sess-gone", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardHandlerInternalErrorIsServerError(t *testing.T) {
	svc := &stubWizard{err: errors.New("redis connection refused")}
	r := wizardRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wizard/sess-1/back", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWizardHandlerBadJSONIsBadRequest(t *testing.T) {
	svc := &stubWizard{session: &models.WizardSession{SessionID: "sess-1"}}
	r := wizardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/wizard/sess-1/service", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
