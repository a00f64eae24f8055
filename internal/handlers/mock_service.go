package handlers

import (
	"context"
	"net/http"
	"time"

	"aircon_controller/internal/models"
	"aircon_controller/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	status service.Status
	err    error
	calls  int
}

func (m *mockMonitoring) GetStatus(ctx context.Context) (service.Status, error) {
	m.calls++
	return m.status, m.err
}

type mockEventLog struct {
	resp     []models.ControlEvent
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ControlEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, apiKey string) *gin.Engine {
	h := NewHandler(s, nil, apiKey)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
