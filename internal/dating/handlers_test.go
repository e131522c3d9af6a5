package dating

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/imadgeboyega/kiekky-matching/internal/auth"
	"github.com/imadgeboyega/kiekky-matching/internal/auth/authtest"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"go.uber.org/zap"
)

const handlerSecret = "handler-secret"

func newTestRouter(t *testing.T) (*mux.Router, *testHarness) {
	t.Helper()

	h := newHarness(Settings{HotpicksPerUser: 2})
	router := mux.NewRouter()
	RegisterRoutes(router, NewHandler(h.svc, zap.NewNop()), nil, auth.NewMiddleware(handlerSecret))
	return router, h
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	return "Bearer " + authtest.AccessToken(t, handlerSecret, userID)
}

func TestHandlers_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		noAuth     bool
		wantStatus int
	}{
		{name: "compatibility", method: http.MethodGet, path: "/api/v1/matching/compatibility/2", wantStatus: http.StatusOK},
		{name: "compatibility self", method: http.MethodGet, path: "/api/v1/matching/compatibility/1", wantStatus: http.StatusBadRequest},
		{name: "compatibility unknown", method: http.MethodGet, path: "/api/v1/matching/compatibility/77", wantStatus: http.StatusNotFound},
		{name: "compatibility bad id", method: http.MethodGet, path: "/api/v1/matching/compatibility/abc", wantStatus: http.StatusBadRequest},
		{name: "analysis", method: http.MethodGet, path: "/api/v1/matching/compatibility/2/analysis", wantStatus: http.StatusOK},
		{name: "insights", method: http.MethodGet, path: "/api/v1/matching/compatibility/2/insights", wantStatus: http.StatusOK},
		{name: "own analysis", method: http.MethodGet, path: "/api/v1/matching/profile/analysis", wantStatus: http.StatusOK},
		{name: "discover", method: http.MethodGet, path: "/api/v1/matching/discover?limit=2", wantStatus: http.StatusOK},
		{name: "discover bad limit", method: http.MethodGet, path: "/api/v1/matching/discover?limit=500", wantStatus: http.StatusBadRequest},
		{name: "record view", method: http.MethodPost, path: "/api/v1/matching/views", body: `{"viewed_profile_id":2,"action":"like"}`, wantStatus: http.StatusCreated},
		{name: "record view bad action", method: http.MethodPost, path: "/api/v1/matching/views", body: `{"viewed_profile_id":2,"action":"wink"}`, wantStatus: http.StatusBadRequest},
		{name: "record view bad json", method: http.MethodPost, path: "/api/v1/matching/views", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "taste", method: http.MethodGet, path: "/api/v1/matching/taste", wantStatus: http.StatusOK},
		{name: "taste refresh", method: http.MethodPost, path: "/api/v1/matching/taste/refresh", wantStatus: http.StatusOK},
		{name: "taste reset", method: http.MethodDelete, path: "/api/v1/matching/taste", wantStatus: http.StatusOK},
		{name: "taste match", method: http.MethodGet, path: "/api/v1/matching/taste/match/3", wantStatus: http.StatusOK},
		{name: "hotpicks", method: http.MethodGet, path: "/api/v1/matching/hotpicks", wantStatus: http.StatusOK},
		{name: "generate hotpicks", method: http.MethodPost, path: "/api/v1/matching/hotpicks/generate", wantStatus: http.StatusCreated},
		{name: "unauthenticated", method: http.MethodGet, path: "/api/v1/matching/taste", noAuth: true, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, _ := newTestRouter(t)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if !tt.noAuth {
				req.Header.Set("Authorization", bearer(t, 1))
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandlers_CompatibilityBody(t *testing.T) {
	t.Parallel()

	router, h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/compatibility/2", nil)
	req.Header.Set("Authorization", bearer(t, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var got matching.CompatibilityScore
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	profiles := testProfiles()
	want := h.engine.CalculateCompatibility(profiles[0], profiles[1], nil)
	if got.OverallScore != want.OverallScore || len(got.Dimensions) != 6 {
		t.Errorf("body = %+v, want overall %d with 6 dimensions", got, want.OverallScore)
	}
	if got.UserID != 1 || got.CandidateID != 2 {
		t.Errorf("ids = %d/%d", got.UserID, got.CandidateID)
	}
}

func TestHandlers_DiscoverBody(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/discover?limit=2&offset=1", nil)
	req.Header.Set("Authorization", bearer(t, 1))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var got DiscoverResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Total != 4 || got.Limit != 2 || got.Offset != 1 || len(got.Profiles) != 2 {
		t.Errorf("DiscoverResponse = %+v", got)
	}
}
