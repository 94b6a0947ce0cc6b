package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/config"
	"github.com/CanDlnd/pausetime/internal/api/handler"
	"github.com/CanDlnd/pausetime/internal/api/router"
	"github.com/CanDlnd/pausetime/internal/dto"
	"github.com/CanDlnd/pausetime/internal/model"
	"github.com/CanDlnd/pausetime/internal/service"
	"github.com/CanDlnd/pausetime/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock StateService ──

type mockStateService struct {
	currentResult *dto.StateResponse
	toggleResult  *dto.ToggleStateResponse
	prayerResult  *dto.PrayerTimesResponse
	prayerErr     error
}

func (m *mockStateService) Current(_ context.Context) *dto.StateResponse {
	return m.currentResult
}
func (m *mockStateService) Toggle(_ *dto.ToggleStateRequest) *dto.ToggleStateResponse {
	return m.toggleResult
}
func (m *mockStateService) PrayerTimes(_ context.Context) (*dto.PrayerTimesResponse, error) {
	return m.prayerResult, m.prayerErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	createResult *dto.ScheduleResponse
	createErr    error
	updateResult *dto.ScheduleResponse
	updateErr    error
	deleteErr    error
	listResult   *dto.ScheduleListResponse
}

func (m *mockScheduleService) Create(_ *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduleService) Update(_ int64, _ *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) Delete(_ int64) error { return m.deleteErr }
func (m *mockScheduleService) List() *dto.ScheduleListResponse {
	return m.listResult
}
func (m *mockScheduleService) AnyActive(_ time.Time) bool    { return false }
func (m *mockScheduleService) Counts(_ time.Time) (int, int) { return 0, 0 }

// ── Mock SettingsService ──

type mockSettingsService struct {
	getResult    *dto.SettingsResponse
	updateResult *dto.SettingsResponse
	updateErr    error
}

func (m *mockSettingsService) Get() *dto.SettingsResponse { return m.getResult }
func (m *mockSettingsService) Update(_ *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSettingsService) Current() model.Settings { return model.DefaultSettings() }

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportSchedules() (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// 测试辅助
// ═══════════════════════════════════════════════════════════

type testServices struct {
	state    *mockStateService
	schedule *mockScheduleService
	settings *mockSettingsService
	export   *mockExportService
}

func setupTestRouter(svcs *testServices) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:1420"}},
		},
	}
	h := &handler.Handler{
		State:    handler.NewStateHandler(svcs.state),
		Schedule: handler.NewScheduleHandler(svcs.schedule),
		Settings: handler.NewSettingsHandler(svcs.settings),
		Export:   handler.NewExportHandler(svcs.export),
	}
	return router.Setup(cfg, h, zap.NewNop())
}

func defaultTestServices() *testServices {
	return &testServices{
		state: &mockStateService{
			currentResult: &dto.StateResponse{
				Time: "12:00", Vakit: "Öğle", Remaining: "1 saat 0 dakika",
				State: "ACTIVE", SchedulesActive: 0, SchedulesTotal: 2,
			},
			toggleResult: &dto.ToggleStateResponse{Enabled: false},
		},
		schedule: &mockScheduleService{
			listResult: &dto.ScheduleListResponse{Schedules: []dto.ScheduleResponse{}},
		},
		settings: &mockSettingsService{
			getResult: &dto.SettingsResponse{City: "ISTANBUL", CalculationMethod: "DIYANET"},
		},
		export: &mockExportService{},
	}
}

func doRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("响应应为合法 JSON: %v", err)
	}
	return envelope
}

// ═══════════════════════════════════════════════════════════
// 状态模块
// ═══════════════════════════════════════════════════════════

func TestGetState(t *testing.T) {
	r := setupTestRouter(defaultTestServices())

	w := doRequest(r, http.MethodGet, "/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatal("data 应为对象")
	}
	if data["state"] != "ACTIVE" || data["vakit"] != "Öğle" {
		t.Errorf("快照字段不一致，实际=%v", data)
	}
	if data["schedules_total"] != float64(2) {
		t.Errorf("schedules_total 期望=2，实际=%v", data["schedules_total"])
	}
}

func TestToggleState(t *testing.T) {
	r := setupTestRouter(defaultTestServices())

	w := doRequest(r, http.MethodPost, "/state/toggle", []byte(`{"enabled": false}`))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	if data["enabled"] != false {
		t.Errorf("期望 enabled=false，实际=%v", data["enabled"])
	}
}

func TestGetPrayerTimes_SourceFailureFallsBackToDefaults(t *testing.T) {
	svcs := defaultTestServices()
	svcs.state.prayerErr = service.ErrValidation // 任意错误即可触发兜底
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodGet, "/api/prayer-times", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("数据源故障时仍期望 200，实际=%d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	times := data["times"].(map[string]interface{})
	if times["Fajr"] != "06:00" {
		t.Errorf("应返回兜底时刻，实际=%v", times)
	}
}

// ═══════════════════════════════════════════════════════════
// 计划模块
// ═══════════════════════════════════════════════════════════

func TestCreateSchedule(t *testing.T) {
	svcs := defaultTestServices()
	svcs.schedule.createResult = &dto.ScheduleResponse{ID: 1, PauseTime: "09:00", Enabled: true}
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodPost, "/api/schedules", []byte(`{"pause_time": "09:00"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际=%d", w.Code)
	}
}

func TestCreateSchedule_MissingPauseTime(t *testing.T) {
	r := setupTestRouter(defaultTestServices())

	w := doRequest(r, http.MethodPost, "/api/schedules", []byte(`{"label": "x"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺少 pause_time 期望 400，实际=%d", w.Code)
	}
}

func TestCreateSchedule_ValidationError(t *testing.T) {
	svcs := defaultTestServices()
	svcs.schedule.createErr = service.ErrValidation
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodPost, "/api/schedules", []byte(`{"pause_time": "25:00"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestUpdateSchedule_InvalidID(t *testing.T) {
	r := setupTestRouter(defaultTestServices())

	w := doRequest(r, http.MethodPut, "/api/schedules/abc", []byte(`{}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非整数 id 期望 400，实际=%d", w.Code)
	}
}

func TestUpdateSchedule_NotFound(t *testing.T) {
	svcs := defaultTestServices()
	svcs.schedule.updateErr = service.ErrScheduleNotFound
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodPut, "/api/schedules/42", []byte(`{"enabled": false}`))
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
}

func TestDeleteSchedule_NotFound(t *testing.T) {
	svcs := defaultTestServices()
	svcs.schedule.deleteErr = service.ErrScheduleNotFound
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodDelete, "/api/schedules/42", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 设置模块
// ═══════════════════════════════════════════════════════════

func TestGetSettings(t *testing.T) {
	r := setupTestRouter(defaultTestServices())

	w := doRequest(r, http.MethodGet, "/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	if data["city"] != "ISTANBUL" {
		t.Errorf("期望 city=ISTANBUL，实际=%v", data["city"])
	}
}

func TestUpdateSettings_ValidationError(t *testing.T) {
	svcs := defaultTestServices()
	svcs.settings.updateErr = service.ErrValidation
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodPut, "/settings", []byte(`{"calculation_method": "UNKNOWN"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 导出模块
// ═══════════════════════════════════════════════════════════

func TestExportSchedules_Empty(t *testing.T) {
	svcs := defaultTestServices()
	svcs.export.err = service.ErrExportNoSchedules
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodGet, "/api/export/schedules", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际=%d", w.Code)
	}
}

func TestExportSchedules_Success(t *testing.T) {
	svcs := defaultTestServices()
	svcs.export.buf = bytes.NewBufferString("xlsx-bytes")
	svcs.export.filename = "pausetime-zamanlamalar-2025-03-10.xlsx"
	r := setupTestRouter(svcs)

	w := doRequest(r, http.MethodGet, "/api/export/schedules", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 响应头")
	}
}
