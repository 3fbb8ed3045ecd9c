// Package client implements a thin REST client for the predict.fun CLOB
// API: order submission, cancellation, and orderbook reads.
//
// The client is transport only — it carries no retry or reconnection
// policy and no trading logic. Orders are signed before they reach this
// layer; the wire format keeps every numeric field as a decimal string.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"predict-sdk/pkg/types"
)

// Client talks to the predict.fun CLOB REST API.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// New creates a client for the given API base URL. The API key is sent on
// every request; pass an empty string for public read-only endpoints.
func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		httpClient.SetHeader("X-API-Key", apiKey)
	}

	return &Client{http: httpClient, logger: logger}
}

// orderRequest is the POST /orders body.
type orderRequest struct {
	Order types.SignedOrder `json:"order"`
	Kind  types.OrderKind   `json:"kind"`
}

// CreateOrder submits a signed order.
func (c *Client) CreateOrder(ctx context.Context, order types.SignedOrder, kind types.OrderKind) (*types.OrderResponse, error) {
	var result types.OrderResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(orderRequest{Order: order, Kind: kind}).
		SetResult(&result).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("create order: status %d: %s", resp.StatusCode(), resp.String())
	}

	c.logger.Info("order submitted",
		"order_id", result.OrderID,
		"status", result.Status,
		"side", order.Side,
		"token_id", order.TokenID,
	)
	return &result, nil
}

// CancelOrders cancels orders by id.
func (c *Client) CancelOrders(ctx context.Context, orderIDs []string) (*types.CancelResponse, error) {
	if len(orderIDs) == 0 {
		return &types.CancelResponse{}, nil
	}

	var result types.CancelResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string][]string{"orderIds": orderIDs}).
		SetResult(&result).
		Delete("/orders")
	if err != nil {
		return nil, fmt.Errorf("cancel orders: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("cancel orders: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &result, nil
}

// bookResponse is the GET /orderbook wire format. Prices and sizes are
// decimal strings to preserve precision in transit.
type bookResponse struct {
	MarketID          uint64      `json:"marketId"`
	UpdateTimestampMS int64       `json:"updateTimestampMs"`
	Asks              [][2]string `json:"asks"`
	Bids              [][2]string `json:"bids"`
}

// GetOrderbook fetches a market's book snapshot.
func (c *Client) GetOrderbook(ctx context.Context, marketID uint64) (*types.Book, error) {
	var result bookResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("marketId", fmt.Sprintf("%d", marketID)).
		SetResult(&result).
		Get("/orderbook")
	if err != nil {
		return nil, fmt.Errorf("get orderbook: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("get orderbook: status %d: %s", resp.StatusCode(), resp.String())
	}

	asks, err := parseTiers(result.Asks)
	if err != nil {
		return nil, fmt.Errorf("get orderbook: asks: %w", err)
	}
	bids, err := parseTiers(result.Bids)
	if err != nil {
		return nil, fmt.Errorf("get orderbook: bids: %w", err)
	}

	return &types.Book{
		MarketID:          result.MarketID,
		UpdateTimestampMS: result.UpdateTimestampMS,
		Asks:              asks,
		Bids:              bids,
	}, nil
}

// parseTiers converts [price, size] string pairs into book tiers. Parsing
// goes through decimal so that malformed inputs fail loudly instead of
// rounding silently.
func parseTiers(levels [][2]string) ([]types.Tier, error) {
	tiers := make([]types.Tier, 0, len(levels))
	for _, level := range levels {
		price, err := decimal.NewFromString(level[0])
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", level[0], err)
		}
		size, err := decimal.NewFromString(level[1])
		if err != nil {
			return nil, fmt.Errorf("parse size %q: %w", level[1], err)
		}
		priceF, _ := price.Float64()
		sizeF, _ := size.Float64()
		tiers = append(tiers, types.Tier{Price: priceF, Size: sizeF})
	}
	return tiers, nil
}
