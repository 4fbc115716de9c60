package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"when3meet/handlers"
)

func named(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &handlers.HandlerBundle{
		CreateEventHandler:            named("createEvent"),
		GetEventHandler:               named("getEvent"),
		GetGridHandler:                named("grid"),
		UpsertAvailabilityHandler:     named("upsert"),
		ListAvailabilitiesHandler:     named("list"),
		GetAvailabilityHandler:        named("getRecord"),
		DeleteAvailabilityHandler:     named("deleteRecord"),
		DeleteUserAvailabilityHandler: named("deleteUserRecord"),
		GetHeatmapHandler:             named("heatmap"),
		ImportGoogleHandler:           named("google"),
		ImportICSHandler:              named("ics"),
		CreateUserHandler:             named("createUser"),
		GetUserByIDHandler:            named("getUser"),
		HealthHandler:                 named("health"),
	}
	r := gin.New()
	RegisterRoutes(r, hb, []string{"https://app.example"})

	cases := []struct{ method, path, want string }{
		{http.MethodPost, "/api/events", "createEvent"},
		{http.MethodGet, "/api/events/e1", "getEvent"},
		{http.MethodGet, "/api/events/e1/grid", "grid"},
		{http.MethodGet, "/api/events/e1/heatmap", "heatmap"},
		{http.MethodPut, "/api/events/e1/availabilities", "upsert"},
		{http.MethodGet, "/api/events/e1/availabilities", "list"},
		{http.MethodDelete, "/api/events/e1/availabilities/u1", "deleteUserRecord"},
		{http.MethodPost, "/api/events/e1/import/google", "google"},
		{http.MethodPost, "/api/events/e1/import/ics", "ics"},
		{http.MethodGet, "/api/availabilities/a1", "getRecord"},
		{http.MethodDelete, "/api/availabilities/a1", "deleteRecord"},
		{http.MethodPost, "/api/users", "createUser"},
		{http.MethodGet, "/api/users/u1", "getUser"},
		{http.MethodGet, "/health", "health"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusOK || w.Body.String() != tc.want {
			t.Errorf("%s %s -> %d %q, want %q", tc.method, tc.path, w.Code, w.Body.String(), tc.want)
		}
	}
}

func TestCORSConfig(t *testing.T) {
	if cfg := corsConfig([]string{"*"}); !cfg.AllowAllOrigins || cfg.AllowCredentials {
		t.Errorf("wildcard config = %+v", cfg)
	}
	if cfg := corsConfig(nil); !cfg.AllowAllOrigins {
		t.Error("empty origins should allow all")
	}
	cfg := corsConfig([]string{"https://app.example"})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 || !cfg.AllowCredentials {
		t.Errorf("explicit config = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
