package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendCreditReminder(t *testing.T) {
	var got CreditReminder
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.SendCreditReminder(context.Background(), CreditReminder{
		SaleID:     "s1",
		ClientName: "Jean Dupont",
		Total:      9000,
		DueDate:    "2025-01-15",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if got.Type != "credit_due" {
		t.Fatalf("type = %q, want the default credit_due", got.Type)
	}
	if got.SaleID != "s1" || got.ClientName != "Jean Dupont" || got.Total != 9000 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSendCreditReminderEndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"downstream unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.SendCreditReminder(context.Background(), CreditReminder{SaleID: "s1"})
	if err == nil {
		t.Fatal("expected an error for a failing endpoint")
	}
}
