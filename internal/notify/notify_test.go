package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/najamsyed/ESPA/internal/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func TestSendDisabled(t *testing.T) {
	n := New("", quietLogger())
	if err := n.Send(context.Background(), RunSummary{Status: "success"}); err != nil {
		t.Errorf("empty URL should be a no-op, got: %v", err)
	}
}

func TestSendDeliversPayload(t *testing.T) {
	var received RunSummary
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	summary := RunSummary{
		Status:        "success",
		OrderDir:      "/orders/abc",
		BandTypes:     3,
		ArtifactCount: 18,
		DurationMS:    1200,
	}
	n := New(server.URL, quietLogger())
	if err := n.Send(context.Background(), summary); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if received != summary {
		t.Errorf("received %+v, want %+v", received, summary)
	}
}

func TestSendRejectedByServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := New(server.URL, quietLogger())
	if err := n.Send(context.Background(), RunSummary{Status: "failed"}); err == nil {
		t.Error("server rejection should have failed the send")
	}
}
