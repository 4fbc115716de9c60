package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/services/calendarimport"
	"when3meet/services/heatmap"
	"when3meet/utils"
)

type fakeAvailability struct {
	upsertErr error
	views     []models.AvailabilityView
	lastReq   models.UpsertAvailabilityRequest
}

func (f *fakeAvailability) Upsert(_ context.Context, eventID string, req models.UpsertAvailabilityRequest) (*models.AvailabilityView, error) {
	f.lastReq = req
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return &models.AvailabilityView{ID: "rec-1", EventID: eventID, User: models.PublicProfile{ID: req.UserID, UserName: "ada"}, Slots: req.Slots}, nil
}

func (f *fakeAvailability) ListForEvent(_ context.Context, eventID string) ([]models.AvailabilityView, error) {
	if eventID != "ev" {
		return nil, utils.NotFound("event_not_found", "Event not found")
	}
	return f.views, nil
}

func (f *fakeAvailability) GetRecord(_ context.Context, id string) (*models.AvailabilityView, error) {
	return nil, utils.NotFound("availability_not_found", "Availability not found")
}

func (f *fakeAvailability) DeleteRecord(context.Context, string, string) error { return nil }

func (f *fakeAvailability) DeleteRecordByID(context.Context, string) error {
	return utils.NotFound("availability_not_found", "Availability not found")
}

func serve(method, path, body string, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(utils.RequestLogger(zap.NewNop()))
	register(r)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return out
}

func TestUpsertAvailabilityHandler(t *testing.T) {
	svc := &fakeAvailability{}
	h := NewAvailabilityHandler(svc, zap.NewNop())
	register := func(r *gin.Engine) { r.PUT("/api/events/:eventId/availabilities", h.UpsertAvailabilityHandler) }

	w := serve(http.MethodPut, "/api/events/ev/availabilities", `{"userId":"u-1","slots":[[0,1],[],[4]]}`, register)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["success"] != true {
		t.Errorf("body = %v", body)
	}
	rec := body["availability"].(map[string]any)
	if rec["userId"].(map[string]any)["userName"] != "ada" {
		t.Errorf("availability = %v", rec)
	}
	if len(svc.lastReq.Slots) != 3 || svc.lastReq.Slots[2][0] != 4 {
		t.Errorf("slots not bound: %v", svc.lastReq.Slots)
	}
	if w.Header().Get(utils.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	svc.upsertErr = utils.NotFound("event_not_found", "Event not found")
	w = serve(http.MethodPut, "/api/events/missing/availabilities", `{"userId":"u-1","slots":[]}`, register)
	if w.Code != http.StatusNotFound || decode(t, w)["reason"] != "event_not_found" {
		t.Errorf("missing event -> %d %s", w.Code, w.Body.String())
	}

	svc.upsertErr = utils.InvalidArgument("user_id_required", "User ID is required", nil)
	w = serve(http.MethodPut, "/api/events/ev/availabilities", `{"slots":[]}`, register)
	if w.Code != http.StatusBadRequest || decode(t, w)["error"] != "User ID is required" {
		t.Errorf("missing user -> %d %s", w.Code, w.Body.String())
	}

	w = serve(http.MethodPut, "/api/events/ev/availabilities", `{"slots":`, register)
	if w.Code != http.StatusBadRequest || decode(t, w)["reason"] != "invalid_body" {
		t.Errorf("bad json -> %d %s", w.Code, w.Body.String())
	}
}

func TestListAvailabilitiesHandler(t *testing.T) {
	svc := &fakeAvailability{views: []models.AvailabilityView{{ID: "r2"}, {ID: "r1"}}}
	h := NewAvailabilityHandler(svc, zap.NewNop())
	register := func(r *gin.Engine) { r.GET("/api/events/:eventId/availabilities", h.ListAvailabilitiesHandler) }

	w := serve(http.MethodGet, "/api/events/ev/availabilities", "", register)
	body := decode(t, w)
	list, ok := body["availabilities"].([]any)
	if w.Code != http.StatusOK || !ok || len(list) != 2 {
		t.Errorf("list -> %d %v", w.Code, body)
	}

	w = serve(http.MethodGet, "/api/events/nope/availabilities", "", register)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing event -> %d", w.Code)
	}
}

func TestDeleteAvailabilityHandlerNotFound(t *testing.T) {
	h := NewAvailabilityHandler(&fakeAvailability{}, zap.NewNop())
	w := serve(http.MethodDelete, "/api/availabilities/x", "", func(r *gin.Engine) {
		r.DELETE("/api/availabilities/:availabilityId", h.DeleteAvailabilityHandler)
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

type fakeEvents struct{ ev *models.Event }

func (f fakeEvents) CreateEvent(_ context.Context, req models.CreateEventRequest) (*models.Event, error) {
	return &models.Event{ID: "new", Title: req.Title, AdminToken: "tok"}, nil
}

func (f fakeEvents) GetEvent(_ context.Context, id string) (*models.Event, error) {
	if f.ev == nil || id != f.ev.ID {
		return nil, utils.NotFound("event_not_found", "Event not found")
	}
	return f.ev, nil
}

func TestEventHandlers(t *testing.T) {
	ev := &models.Event{ID: "ev", SelectedDays: []int{10, 11}, Month: 3, Year: 2025, StartTime: "09:00", EndTime: "11:00", AdminToken: "tok"}
	h := NewEventHandler(fakeEvents{ev: ev}, zap.NewNop())
	register := func(r *gin.Engine) {
		r.POST("/api/events", h.CreateEventHandler)
		r.GET("/api/events/:eventId", h.GetEventHandler)
		r.GET("/api/events/:eventId/grid", h.GetGridHandler)
	}

	w := serve(http.MethodGet, "/api/events/ev?admin=tok", "", register)
	body := decode(t, w)
	if w.Code != http.StatusOK || body["isAdmin"] != true {
		t.Errorf("admin get -> %d %v", w.Code, body)
	}
	if _, leaked := body["event"].(map[string]any)["adminToken"]; leaked {
		t.Error("admin token serialized with the event")
	}

	w = serve(http.MethodGet, "/api/events/ev", "", register)
	if decode(t, w)["isAdmin"] != false {
		t.Error("isAdmin without token")
	}

	w = serve(http.MethodGet, "/api/events/ev/grid", "", register)
	body = decode(t, w)
	grid := body["grid"].([]any)
	labels := body["slotLabels"].([]any)
	if len(grid) != 2 || len(grid[0].([]any)) != 8 || labels[0] != "09:00" || labels[7] != "10:45" {
		t.Errorf("grid body = %v", body)
	}

	w = serve(http.MethodPost, "/api/events", `{"title":"Sync","creatorId":"c","startTime":"09:00","endTime":"10:00","selectedDays":[1],"month":3,"year":2025}`, register)
	body = decode(t, w)
	if w.Code != http.StatusCreated || body["adminToken"] != "tok" {
		t.Errorf("create -> %d %v", w.Code, body)
	}

	w = serve(http.MethodPost, "/api/events", `{"title":"Sync"}`, register)
	if w.Code != http.StatusBadRequest {
		t.Errorf("create without fields -> %d", w.Code)
	}
}

type fakeImporter struct{ err error }

func (f fakeImporter) FromGoogle(context.Context, string, string) (*calendarimport.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &calendarimport.Result{Status: calendarimport.StatusImported, Source: "google", EventCount: 1, Free: [][]bool{{true, false}}}, nil
}

func (f fakeImporter) FromICS(context.Context, string, string) (*calendarimport.Result, error) {
	return f.FromGoogle(context.Background(), "", "")
}

func TestImportHandlers(t *testing.T) {
	register := func(imp fakeImporter) func(r *gin.Engine) {
		h := NewImportHandler(imp, zap.NewNop())
		return func(r *gin.Engine) {
			r.POST("/api/events/:eventId/import/google", h.ImportGoogleHandler)
			r.POST("/api/events/:eventId/import/ics", h.ImportICSHandler)
		}
	}

	w := serve(http.MethodPost, "/api/events/ev/import/google", `{"accessToken":"t"}`, register(fakeImporter{}))
	body := decode(t, w)
	if w.Code != http.StatusOK || body["status"] != "imported" || body["eventCount"] != float64(1) {
		t.Errorf("import -> %d %v", w.Code, body)
	}

	empty := utils.ExternalUnavailable("calendar_empty", "No events found in your calendar for the selected dates.", nil)
	w = serve(http.MethodPost, "/api/events/ev/import/ics", `{"url":"https://cal.example/x.ics"}`, register(fakeImporter{err: empty}))
	if w.Code != http.StatusBadGateway || decode(t, w)["reason"] != "calendar_empty" {
		t.Errorf("empty import -> %d %s", w.Code, w.Body.String())
	}

	w = serve(http.MethodPost, "/api/events/ev/import/google", `{}`, register(fakeImporter{}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing token -> %d", w.Code)
	}
}

type fakeSnapshots struct{}

func (fakeSnapshots) Snapshot(_ context.Context, eventID string) (*heatmap.Snapshot, error) {
	if eventID != "ev" {
		return nil, utils.NotFound("event_not_found", "Event not found")
	}
	return &heatmap.Snapshot{EventID: "ev", Total: 3}, nil
}

func TestHeatmapHandler(t *testing.T) {
	h := NewHeatmapHandler(fakeSnapshots{}, zap.NewNop())
	register := func(r *gin.Engine) { r.GET("/api/events/:eventId/heatmap", h.GetHeatmapHandler) }

	w := serve(http.MethodGet, "/api/events/ev/heatmap", "", register)
	if w.Code != http.StatusOK || decode(t, w)["heatmap"].(map[string]any)["total"] != float64(3) {
		t.Errorf("heatmap -> %d %s", w.Code, w.Body.String())
	}
	w = serve(http.MethodGet, "/api/events/x/heatmap", "", register)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing event -> %d", w.Code)
	}
}

type fakeUsers struct{}

func (fakeUsers) CreateUser(_ context.Context, req models.CreateUserRequest) (*models.User, error) {
	return &models.User{ID: "u-1", UserName: req.UserName, Email: req.Email}, nil
}

func (fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return nil, utils.NotFound("user_not_found", "User not found")
}

func TestUserHandlers(t *testing.T) {
	h := NewUserHandler(fakeUsers{}, zap.NewNop())
	register := func(r *gin.Engine) {
		r.POST("/api/users", h.CreateUserHandler)
		r.GET("/api/users/:userId", h.GetUserByIDHandler)
	}

	w := serve(http.MethodPost, "/api/users", `{"userName":"ada","email":"ada@example.com"}`, register)
	if w.Code != http.StatusCreated {
		t.Errorf("create -> %d %s", w.Code, w.Body.String())
	}
	w = serve(http.MethodPost, "/api/users", `{"userName":"ada","email":"not-an-email"}`, register)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email -> %d", w.Code)
	}
	w = serve(http.MethodGet, "/api/users/u-9", "", register)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user -> %d", w.Code)
	}
}

func TestHealthHandlerWithoutBackends(t *testing.T) {
	w := serve(http.MethodGet, "/health", "", func(r *gin.Engine) { r.GET("/health", HealthHandler(nil, nil)) })
	if w.Code != http.StatusServiceUnavailable || decode(t, w)["status"] != "degraded" {
		t.Errorf("health -> %d %s", w.Code, w.Body.String())
	}
}
