package notifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTelegram(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("test-token", srv.Client(), discardLogger())
	n.baseURL = srv.URL
	return n
}

func TestTelegramSend(t *testing.T) {
	var got telegramMessage
	n := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	})

	err := SendTestMessage(context.Background(), n, "chat-42")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.ChatID != "chat-42" {
		t.Errorf("chat_id = %q", got.ChatID)
	}
	if got.ParseMode != "Markdown" {
		t.Errorf("parse_mode = %q", got.ParseMode)
	}
	if !got.DisableWebPagePreview {
		t.Error("expected web page preview disabled")
	}
	if !strings.Contains(got.Text, "[Apply Here](") {
		t.Errorf("message text missing apply link: %q", got.Text)
	}
}

func TestTelegramSend_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	n := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	})

	if err := SendTestMessage(context.Background(), n, "chat-42"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls.Load())
	}
}

func TestTelegramSend_NonOKIsError(t *testing.T) {
	n := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	if err := SendTestMessage(context.Background(), n, "chat-42"); err == nil {
		t.Fatal("expected error for HTTP 400, got nil")
	}
}
