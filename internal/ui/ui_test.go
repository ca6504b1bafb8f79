package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/inkcalc/internal/recognize"
)

func TestSecondSubmissionRunsWhileFirstOutstanding(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"expr": "2+2", "result": "4", "assign": false}},
		})
	}))
	defer srv.Close()

	delivered := make(chan recognize.Result, 4)
	sched := recognize.NewScheduler(time.Millisecond, func(r recognize.Result) { delivered <- r })
	statuses := make(chan string, 4)
	client := recognize.NewClient(srv.URL)

	png := []byte("encoded drawing")
	submitDrawing(client, png, nil, sched, func(msg string) { statuses <- msg })
	submitDrawing(client, png, nil, sched, func(msg string) { statuses <- msg })

	// Both requests must be in flight at the same time: no de-duplication.
	deadline := time.Now().Add(2 * time.Second)
	for requests.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 concurrent requests, got %d", requests.Load())
		}
		time.Sleep(time.Millisecond)
	}
	close(release)

	// Each submission schedules its own result batch.
	for i := 0; i < 2; i++ {
		select {
		case r := <-delivered:
			if r.Expr != "2+2" || r.Result != "4" {
				t.Fatalf("unexpected result %+v", r)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("result batch %d never surfaced", i+1)
		}
	}
	for i := 0; i < 2; i++ {
		select {
		case <-statuses:
		case <-time.After(2 * time.Second):
			t.Fatalf("status message %d never arrived", i+1)
		}
	}
}
