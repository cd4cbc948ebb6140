package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestConnectCheck(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus string
		wantErr    string
	}{
		{"detail", http.StatusOK, `{"status":"ok","detail":"backend reachable"}`, "backend reachable", ""},
		{"no detail", http.StatusOK, `{}`, "ok", ""},
		{"http failure ignores body", http.StatusServiceUnavailable, `{"detail":"down"}`, "", "HTTP 503"},
		{"application failure", http.StatusOK, `{"status":"error","detail":"maintenance"}`, "", "maintenance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/connect_check" {
					t.Errorf("Expected path '/api/v1/connect_check', got '%s'", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			status, err := newTestClient(t, server).ConnectCheck(context.Background())
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("Expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("Expected status %q, got %q", tt.wantStatus, status)
			}
		})
	}
}

func TestDBCheck(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus string
		wantErr    string
		wantKind   ErrorKind
	}{
		{"detail", http.StatusOK, `{"status":"ok","detail":"db reachable"}`, "db reachable", "", ""},
		{"no detail", http.StatusOK, `{}`, "db ok", "", ""},
		{"failure detail", http.StatusServiceUnavailable, `{"detail":"connection refused"}`, "", "connection refused", KindHTTP},
		{"failure without detail", http.StatusInternalServerError, `{}`, "", "HTTP 500", KindHTTP},
		{"undecodable body", http.StatusBadGateway, `Bad Gateway`, "", "", KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/db_check" {
					t.Errorf("Expected path '/api/v1/db_check', got '%s'", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			status, err := newTestClient(t, server).DBCheck(context.Background())
			if tt.wantKind != "" {
				if kind, _ := KindOf(err); kind != tt.wantKind {
					t.Fatalf("Expected kind %s, got %v", tt.wantKind, err)
				}
				if tt.wantErr != "" && err.Error() != tt.wantErr {
					t.Errorf("Expected error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("Expected status %q, got %q", tt.wantStatus, status)
			}
		})
	}
}

func TestRunChecksConcurrently(t *testing.T) {
	var inFlight, peak int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(100 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		if r.URL.Path == "/api/v1/db_check" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"detail":"db down"}`)
			return
		}
		_, _ = io.WriteString(w, `{"detail":"backend reachable"}`)
	}))
	defer server.Close()

	results := newTestClient(t, server).RunChecks(context.Background(), CheckConnect, CheckDB)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Check != CheckConnect || !results[0].OK() || results[0].Status != "backend reachable" {
		t.Errorf("Unexpected connect result %+v", results[0])
	}
	if results[1].Check != CheckDB || results[1].OK() || results[1].Error != "db down" {
		t.Errorf("Unexpected db result %+v", results[1])
	}
	if atomic.LoadInt32(&peak) < 2 {
		t.Errorf("Expected checks to overlap, peak concurrency %d", peak)
	}
}

func TestCheckLabel(t *testing.T) {
	if CheckConnect.Label() != "Backend" || CheckDB.Label() != "Database" {
		t.Error("Unexpected check labels")
	}
}
