package recognize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSolveSendsImageAndBindings(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"expr": "2+2", "result": "4", "assign": false},
				{"expr": "x", "result": "7", "assign": true},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	results, err := c.Solve(context.Background(), []byte("not-a-real-png"), map[string]string{"x": "7"})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !strings.HasPrefix(got.Image, "data:image/png;base64,") {
		t.Fatalf("image should be a base64 data URL, got %q", got.Image)
	}
	if got.DictOfVars["x"] != "7" {
		t.Fatalf("bindings not forwarded: %v", got.DictOfVars)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Expr != "2+2" || results[0].Result != "4" || results[0].Assign {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if !results[1].Assign {
		t.Fatal("second result should carry the assign flag")
	}
}

func TestSolveNilVarsSendsEmptyObject(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Solve(context.Background(), nil, nil); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if string(raw["dict_of_vars"]) != "{}" {
		t.Fatalf("expected empty bindings object, got %s", raw["dict_of_vars"])
	}
}

func TestSolveServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"model unavailable"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Solve(context.Background(), nil, nil)
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("error should carry status and message, got %v", err)
	}
}

func TestSolveMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": not json`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Solve(context.Background(), nil, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSolveWithRetryStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL).SolveWithRetry(ctx, nil, nil, 5)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestSchedulerDeliversEachResultAfterDelay(t *testing.T) {
	var mu sync.Mutex
	var seen []Result
	s := NewScheduler(20*time.Millisecond, func(r Result) {
		mu.Lock()
		seen = append(seen, r)
		mu.Unlock()
	})

	s.Schedule([]Result{
		{Expr: "1+1", Result: "2"},
		{Expr: "3*3", Result: "9"},
	})

	mu.Lock()
	early := len(seen)
	mu.Unlock()
	if early != 0 {
		t.Fatal("results must not surface before the delay")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 deliveries, got %d", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerNegativeDelayFallsBack(t *testing.T) {
	s := NewScheduler(-1, nil)
	if s.Delay() != DefaultDisplayDelay {
		t.Fatalf("expected default delay, got %v", s.Delay())
	}
}
