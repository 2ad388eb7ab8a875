// README: Smoke-check cases; walks the draft-to-confirmation flow against a running instance.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

var orderIDPattern = regexp.MustCompile(`^ORD-\d{8}$`)

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	// One session per run so repeated invocations never trip over stale drafts.
	sid := fmt.Sprintf("bench-%d", time.Now().UnixNano())
	draftBase := base + "/api/drafts/" + sid

	return []TestCase{
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Postgres connect (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "SKIP", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				resp, err := r.httpc.Get(base + "/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				_ = resp.Body.Close()
				if resp.StatusCode != 200 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},

		httpCase("Draft: incomplete skeleton saved", http.MethodPut, draftBase+"/skeleton", map[string]any{
			"transportType": "motorbike",
			"orderType":     "one-way",
			"locationPoints": []map[string]any{
				{"id": "p1", "type": "pickup", "location": map[string]float64{"lat": 24.7136, "lng": 46.6753}},
				{"id": "d1", "type": "dropoff"},
			},
		}, []int{200}),

		httpCase("Draft: auto-select gated below 100%", http.MethodPost, draftBase+"/auto-select", nil, []int{422}),

		httpCase("Draft: complete skeleton saved", http.MethodPut, draftBase+"/skeleton", completeSkeleton(), []int{200}),

		{
			Name: "Draft: summary reports 100%",
			Run: func(ctx context.Context, r *Runner) Result {
				var sum struct {
					Completion int `json:"completion"`
				}
				res := r.getJSON(ctx, draftBase+"/summary", &sum)
				if res.Status != "PASS" {
					return res
				}
				if sum.Completion != 100 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("completion=%d", sum.Completion)}
				}
				return res
			},
		},

		httpCase("Order: auto-select driver", http.MethodPost, draftBase+"/auto-select", nil, []int{200}),
		httpCase("Order: simulated payment", http.MethodPost, draftBase+"/payment", nil, []int{200}),

		{
			Name: "Order: confirm and fetch record",
			Run: func(ctx context.Context, r *Runner) Result {
				var rec struct {
					OrderID string `json:"orderId"`
				}
				res := r.postJSON(ctx, draftBase+"/confirm", nil, &rec)
				if res.Status != "PASS" {
					return res
				}
				if !orderIDPattern.MatchString(rec.OrderID) {
					return Result{Status: "FAIL", Note: "bad order id: " + rec.OrderID}
				}
				return r.getJSON(ctx, base+"/api/orders/"+rec.OrderID, &struct{}{})
			},
		},

		httpCase("Order: summary 404 after confirmation", http.MethodGet, draftBase+"/summary", nil, []int{404}),

		httpCase("Location: driver update accepted", http.MethodPut, base+"/api/drivers/bench-d1/location", map[string]any{
			"lat": 24.7136, "lng": 46.6753, "seq": 1, "tsMs": time.Now().UnixMilli(),
		}, []int{200}),

		httpCase("Location: invalid coords rejected", http.MethodPut, base+"/api/drivers/bench-d1/location", map[string]any{
			"lat": 123.0, "lng": 456.0, "seq": 2, "tsMs": time.Now().UnixMilli(),
		}, []int{400}),

		httpCase("Matching: nearby drivers query", http.MethodGet, base+"/api/drivers/nearby?lat=24.7136&lng=46.6753", nil, []int{200}),

		{
			Name: "Perf: location update throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/drivers/bench-perf/location", map[string]any{
					"lat": 24.7136, "lng": 46.6753, "seq": 1, "tsMs": time.Now().UnixMilli(),
				})
			},
		},
	}
}

func completeSkeleton() map[string]any {
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

func httpCase(name, method, url string, body any, okStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if contains(okStatuses, resp.StatusCode) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

func (r *Runner) getJSON(ctx context.Context, url string, out any) Result {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	return r.doJSON(req, out)
}

func (r *Runner) postJSON(ctx context.Context, url string, body, out any) Result {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	req.Header.Set("Content-Type", "application/json")
	return r.doJSON(req, out)
}

func (r *Runner) doJSON(req *http.Request, out any) Result {
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Result{Status: "FAIL", Latency: latency, Note: "bad json: " + err.Error()}
	}
	return Result{Status: "PASS", Latency: latency}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPut, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	cleaned := strings.Join(filtered, "\n")
	parts := strings.Split(cleaned, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
