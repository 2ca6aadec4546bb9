package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	handler := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("middleware must not alter the response code, got %d", rec.Code)
	}

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	Handler().ServeHTTP(metricsRec, metricsReq)

	if metricsRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", metricsRec.Code)
	}
	if !strings.Contains(metricsRec.Body.String(), "prepwise_http_requests_total") {
		t.Fatalf("expected request counter in metrics exposition")
	}
}

func TestMiddlewareLabelsRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware())
	router.Get("/api/v1/interviews/{interviewId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"iv-1", "iv-2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/interviews/"+id, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for interview %s, got %d", id, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `path="/api/v1/interviews/{interviewId}"`) {
		t.Fatalf("expected the route pattern as the path label")
	}
	if strings.Contains(body, `path="/api/v1/interviews/iv-1"`) {
		t.Fatalf("raw request path must not appear as a label value")
	}
}

func TestSessionGaugeRoundTrip(t *testing.T) {
	SessionOpened()
	SessionClosed()
	FeedbackOutcome("scored")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, "prepwise_active_voice_sessions") {
		t.Fatalf("expected session gauge in metrics exposition")
	}
	if !strings.Contains(body, `prepwise_feedback_generated_total{outcome="scored"}`) {
		t.Fatalf("expected feedback outcome counter in metrics exposition")
	}
}
