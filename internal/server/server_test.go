package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"payments-gateway/internal/models"
	"payments-gateway/internal/payment"
	"payments-gateway/internal/store"
)

type downStore struct {
	store.Store
}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func newTestServer(s store.Store) *Server {
	gin.SetMode(gin.TestMode)
	return New(s, payment.NewHandler(s, nil))
}

func TestHealthHealthy(t *testing.T) {
	s := store.NewMemory()
	if _, err := s.Save(context.Background(), models.Payment{From: "a", To: "b", Amount: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	srv := newTestServer(s)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Time     string `json:"time"`
		Payments int64  `json:"payments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || body.Payments != 1 {
		t.Errorf("body = %+v", body)
	}
	if _, err := time.Parse(time.RFC3339, body.Time); err != nil {
		t.Errorf("time %q not RFC3339: %v", body.Time, err)
	}
}

func TestHealthUnhealthy(t *testing.T) {
	srv := newTestServer(downStore{Store: store.NewMemory()})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unhealthy") {
		t.Errorf("body = %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Errorf("store error leaked to client: %s", w.Body.String())
	}
}

func TestPaymentRoutesMounted(t *testing.T) {
	srv := newTestServer(store.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"from":"a","to":"b","amount":5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /payments = %d, want 201", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /payments = %d, want 200", w.Code)
	}
}

func TestRecoveryFromPanic(t *testing.T) {
	srv := newTestServer(store.NewMemory())
	srv.router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(store.NewMemory())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, addr, time.Second) }()

	// Wait for the listener.
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunListenError(t *testing.T) {
	srv := newTestServer(store.NewMemory())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	if err := srv.Run(context.Background(), l.Addr().String(), time.Second); err == nil {
		t.Fatal("expected error when address is in use")
	}
}
