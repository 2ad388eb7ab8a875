// README: Router-level tests for the draft-to-confirmation flow over miniredis.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"wasel/internal/config"
	httptransport "wasel/internal/http"
	"wasel/internal/modules/draft"
	"wasel/internal/modules/location"
	"wasel/internal/modules/matching"
	"wasel/internal/modules/order"
	"wasel/internal/session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := session.NewRepo(client, time.Hour)
	drafts := draft.NewService(repo)
	matchingSvc := matching.NewService(matching.NewStore(client, nil), config.MatchingConfig{RadiusKm: 10, Limit: 5})
	locationSvc := location.NewService(location.NewStore(client))
	orders := order.NewService(drafts, repo, matchingSvc, order.NewSimulatedPayment(0))

	return httptransport.NewRouter(httptransport.RouterDeps{
		Drafts:   drafts,
		Orders:   orders,
		Matching: matchingSvc,
		Location: locationSvc,
		Repo:     repo,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func completeSkeletonBody() map[string]any {
	return map[string]any{
		"transportType": "motorbike",
		"orderType":     "one-way",
		"locationPoints": []map[string]any{
			{
				"id":                "p1",
				"type":              "pickup",
				"location":          map[string]float64{"lat": 24.7136, "lng": 46.6753},
				"additionalDetails": "gate 3",
			},
			{
				"id":                "d1",
				"type":              "dropoff",
				"location":          map[string]float64{"lat": 24.7742, "lng": 46.7386},
				"additionalDetails": "reception",
				"recipientName":     "Huda",
				"recipientPhone":    "0551234567",
			},
		},
		"packageDescription": "documents",
		"packageWeight":      "1kg",
	}
}

func TestDraftFlow_EndToEnd(t *testing.T) {
	r := newTestRouter(t)

	if w := doJSON(t, r, http.MethodPut, "/api/drafts/s1/skeleton", completeSkeletonBody()); w.Code != http.StatusOK {
		t.Fatalf("put skeleton: status %d, body %s", w.Code, w.Body)
	}

	w := doJSON(t, r, http.MethodGet, "/api/drafts/s1/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: status %d, body %s", w.Code, w.Body)
	}
	var sum order.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Completion != 100 {
		t.Fatalf("completion = %d, want 100", sum.Completion)
	}

	w = doJSON(t, r, http.MethodPost, "/api/drafts/s1/auto-select", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("auto-select: status %d, body %s", w.Code, w.Body)
	}
	var res order.AutoSelectResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Driver == nil || !res.Driver.Synthetic {
		t.Fatalf("expected a synthetic driver with no supply, got %+v", res.Driver)
	}
	if res.Pricing.Total <= 0 {
		t.Fatalf("expected priced estimate, got %+v", res.Pricing)
	}

	if w = doJSON(t, r, http.MethodPost, "/api/drafts/s1/payment", nil); w.Code != http.StatusOK {
		t.Fatalf("payment: status %d, body %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodPost, "/api/drafts/s1/confirm?driver_id="+res.Driver.ID, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("confirm: status %d, body %s", w.Code, w.Body)
	}
	var rec order.Record
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.DriverID == nil || *rec.DriverID != res.Driver.ID {
		t.Errorf("record should carry the selected driver, got %+v", rec.DriverID)
	}

	if w = doJSON(t, r, http.MethodGet, "/api/orders/"+rec.OrderID, nil); w.Code != http.StatusOK {
		t.Errorf("get record: status %d, body %s", w.Code, w.Body)
	}
	// The draft is gone now; the summary page must point back to the form.
	w = doJSON(t, r, http.MethodGet, "/api/drafts/s1/summary", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("summary after confirm: status %d, want 404", w.Code)
	}
}

func TestAutoSelect_IncompleteDraftReturnsWarning(t *testing.T) {
	r := newTestRouter(t)

	body := completeSkeletonBody()
	points := body["locationPoints"].([]map[string]any)
	delete(points[1], "recipientPhone")
	if w := doJSON(t, r, http.MethodPut, "/api/drafts/s1/skeleton", body); w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}

	w := doJSON(t, r, http.MethodPost, "/api/drafts/s1/auto-select", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422; body %s", w.Code, w.Body)
	}
	var warn order.IncompleteWarning
	if err := json.Unmarshal(w.Body.Bytes(), &warn); err != nil {
		t.Fatal(err)
	}
	if warn.Completion <= 0 || warn.Completion >= 100 {
		t.Errorf("warning completion = %d, want partial score", warn.Completion)
	}
	if warn.DismissAfterSeconds != 5 {
		t.Errorf("dismiss window = %d, want 5", warn.DismissAfterSeconds)
	}
	if warn.Message == "" {
		t.Error("warning needs a user-facing message")
	}
}

func TestSummary_MissingDraftPointsBackToForm(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/drafts/ghost/summary", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	var resp struct {
		Error    string `json:"error"`
		Recovery string `json:"recovery"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Recovery != "/order-details" {
		t.Errorf("recovery = %q, want /order-details", resp.Recovery)
	}
}

func TestSessionMiddleware_RejectsBadSessionIDs(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/drafts/bad%20id!/summary", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestPutSegments_RejectsEmptyList(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/drafts/s1/segments", []any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400; body %s", w.Code, w.Body)
	}
}

func TestResumeLifecycle(t *testing.T) {
	r := newTestRouter(t)

	if w := doJSON(t, r, http.MethodPut, "/api/drafts/s1/skeleton", completeSkeletonBody()); w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/api/drafts/s1/resume", map[string]any{"autoSelectOpen": true}); w.Code != http.StatusOK {
		t.Fatalf("post resume: %d %s", w.Code, w.Body)
	}

	var sum order.Summary
	w := doJSON(t, r, http.MethodGet, "/api/drafts/s1/summary", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if !sum.Resume.AutoSelectOpen {
		t.Fatal("resume flag should be visible in the summary")
	}

	if w := doJSON(t, r, http.MethodDelete, "/api/drafts/s1/resume", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete resume: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/drafts/s1/summary", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Resume.AutoSelectOpen {
		t.Error("resume flag should be cleared")
	}
}

func TestDriverLocationEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/drivers/d1/location",
		map[string]any{"lat": 24.7136, "lng": 46.6753, "seq": 1, "tsMs": 1000})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body)
	}
	var res location.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Errorf("first report should be accepted, got %+v", res)
	}

	w = doJSON(t, r, http.MethodPut, "/api/drivers/d1/location",
		map[string]any{"lat": 91.0, "lng": 46.6753, "seq": 2, "tsMs": 3000})
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range latitude: status %d, want 400", w.Code)
	}
}
