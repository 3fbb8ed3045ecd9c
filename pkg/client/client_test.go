package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"predict-sdk/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}

		var req struct {
			Order types.SignedOrder `json:"order"`
			Kind  types.OrderKind   `json:"kind"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Kind != types.KindLimit {
			t.Errorf("kind = %s, want LIMIT", req.Kind)
		}
		if req.Order.MakerAmount != "1000000000000000000" {
			t.Errorf("makerAmount = %q, should travel as a decimal string", req.Order.MakerAmount)
		}

		json.NewEncoder(w).Encode(types.OrderResponse{Success: true, OrderID: "o-1", Status: "live"})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", testLogger())
	resp, err := c.CreateOrder(context.Background(), types.SignedOrder{
		Order: types.Order{
			Salt:        "42",
			TokenID:     "12345",
			MakerAmount: "1000000000000000000",
			TakerAmount: "2000000000000000000",
			Side:        types.BUY,
		},
		Signature: "0xabc",
	}, types.KindLimit)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.OrderID != "o-1" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateOrderServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "", testLogger())
	if _, err := c.CreateOrder(context.Background(), types.SignedOrder{}, types.KindLimit); err == nil {
		t.Error("expected error on 400 response")
	}
}

func TestCancelOrders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(types.CancelResponse{Canceled: []string{"o-1", "o-2"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", testLogger())
	resp, err := c.CancelOrders(context.Background(), []string{"o-1", "o-2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Canceled) != 2 {
		t.Errorf("canceled = %v", resp.Canceled)
	}
}

func TestCancelOrdersEmpty(t *testing.T) {
	t.Parallel()

	// No ids means no HTTP call at all.
	c := New("http://invalid.localhost", "", testLogger())
	resp, err := c.CancelOrders(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Canceled) != 0 {
		t.Errorf("canceled = %v", resp.Canceled)
	}
}

func TestGetOrderbook(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orderbook" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("marketId"); got != "7" {
			t.Errorf("marketId = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"marketId":          7,
			"updateTimestampMs": 1700000000000,
			"asks":              [][2]string{{"0.46", "100"}, {"0.48", "50.5"}},
			"bids":              [][2]string{{"0.44", "36.77"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "", testLogger())
	book, err := c.GetOrderbook(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}

	if book.MarketID != 7 {
		t.Errorf("marketId = %d", book.MarketID)
	}
	if len(book.Asks) != 2 || len(book.Bids) != 1 {
		t.Fatalf("asks/bids = %d/%d", len(book.Asks), len(book.Bids))
	}
	if book.Asks[0].Price != 0.46 || book.Asks[0].Size != 100 {
		t.Errorf("asks[0] = %+v", book.Asks[0])
	}
	if book.Bids[0].Size != 36.77 {
		t.Errorf("bids[0] = %+v", book.Bids[0])
	}
}

func TestGetOrderbookMalformedTier(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"marketId": 7,
			"asks":     [][2]string{{"not-a-price", "100"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "", testLogger())
	if _, err := c.GetOrderbook(context.Background(), 7); err == nil {
		t.Error("expected error for malformed price")
	}
}
