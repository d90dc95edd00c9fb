package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mymmrac/telego"

	"payments-gateway/internal/models"
)

var testToken = "123456789:" + strings.Repeat("A", 35)

func TestEventText(t *testing.T) {
	e := Event{
		Action:  ActionUpdated,
		Payment: models.Payment{ID: "p1", From: "alice", To: "bob", Amount: 42},
	}

	want := "Payment p1 updated: alice -> bob, amount 42"
	if got := e.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestFromConfigWithoutToken(t *testing.T) {
	n, err := FromConfig("", 0)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if _, ok := n.(Nop); !ok {
		t.Fatalf("got %T, want Nop", n)
	}
	if err := n.Notify(context.Background(), Event{}); err != nil {
		t.Errorf("Nop.Notify: %v", err)
	}
}

func TestNewTelegramValidation(t *testing.T) {
	if _, err := NewTelegram(testToken, 0); err == nil {
		t.Error("expected error for missing chat id")
	}
	if _, err := NewTelegram("not-a-token", 42); err == nil {
		t.Error("expected error for malformed token")
	}
}

type sentMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func TestTelegramNotify(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
		sent sentMessage
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		path = r.URL.Path
		_ = json.Unmarshal(body, &sent)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"}}}`)
	}))
	defer srv.Close()

	tg, err := NewTelegram(testToken, 42, telego.WithAPIServer(srv.URL), telego.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewTelegram: %v", err)
	}

	e := Event{Action: ActionCreated, Payment: models.Payment{ID: "p1", From: "a", To: "b", Amount: 3}}
	if err := tg.Notify(context.Background(), e); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasSuffix(path, "/sendMessage") {
		t.Errorf("called %q, want sendMessage", path)
	}
	if sent.ChatID != 42 {
		t.Errorf("chat_id = %d, want 42", sent.ChatID)
	}
	if sent.Text != e.Text() {
		t.Errorf("text = %q, want %q", sent.Text, e.Text())
	}
}

func TestTelegramNotifyAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	tg, err := NewTelegram(testToken, 42, telego.WithAPIServer(srv.URL), telego.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewTelegram: %v", err)
	}

	if err := tg.Notify(context.Background(), Event{Action: ActionDeleted}); err == nil {
		t.Fatal("expected error from failing API")
	}
}

func TestFromConfigWithTokenIsAsync(t *testing.T) {
	n, err := FromConfig(testToken, 42)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if _, ok := n.(*Async); !ok {
		t.Fatalf("got %T, want *Async", n)
	}
}
