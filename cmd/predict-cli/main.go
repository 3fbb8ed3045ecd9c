// predict-cli — build, sign, and submit a predict.fun limit order from the
// command line.
//
// The tool is a worked example of the SDK's order pipeline:
//
//	internal/config    — YAML config + PREDICT_* env overrides
//	pkg/fixedpoint     — exact float → wei conversion for the price/size flags
//	pkg/builder        — amount calculation, order assembly, EIP-712 signing
//	pkg/client         — order submission over the CLOB REST API
//
// In dry-run mode the signed order is printed instead of submitted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"predict-sdk/internal/config"
	"predict-sdk/pkg/builder"
	"predict-sdk/pkg/client"
	"predict-sdk/pkg/fixedpoint"
	"predict-sdk/pkg/signer"
	"predict-sdk/pkg/types"
)

func main() {
	var (
		cfgPath      = flag.String("config", "configs/config.yaml", "path to config file")
		tokenID      = flag.String("token", "", "CTF token id to trade")
		sideFlag     = flag.String("side", "BUY", "BUY or SELL")
		price        = flag.Float64("price", 0, "limit price per share (0, 1]")
		size         = flag.Float64("size", 0, "quantity in shares")
		feeBps       = flag.Uint("fee-bps", 0, "fee rate in basis points")
		negRisk      = flag.Bool("neg-risk", false, "market uses the neg-risk exchange")
		yieldBearing = flag.Bool("yield-bearing", false, "market uses the yield-bearing exchange")
	)
	flag.Parse()

	if p := os.Getenv("PREDICT_CONFIG"); p != "" && *cfgPath == "configs/config.yaml" {
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", *cfgPath)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	if *tokenID == "" || *price <= 0 || *size <= 0 {
		logger.Error("usage: predict-cli -token <id> -side BUY|SELL -price 0.46 -size 100")
		os.Exit(2)
	}
	side := types.Side(*sideFlag)
	if side != types.BUY && side != types.SELL {
		logger.Error("side must be BUY or SELL", "side", *sideFlag)
		os.Exit(2)
	}

	key, err := signer.NewPrivateKeySigner(cfg.Wallet.PrivateKey)
	if err != nil {
		logger.Error("failed to parse private key", "error", err)
		os.Exit(1)
	}

	b, err := builder.Make(types.ChainID(cfg.Wallet.ChainID))
	if err != nil {
		logger.Error("failed to create builder", "error", err)
		os.Exit(1)
	}
	b = b.WithSigner(key)

	priceWei, err := fixedpoint.ToWei(*price)
	if err != nil {
		logger.Error("invalid price", "error", err)
		os.Exit(1)
	}
	sizeWei, err := fixedpoint.ToWei(*size)
	if err != nil {
		logger.Error("invalid size", "error", err)
		os.Exit(1)
	}

	amounts, err := b.GetLimitOrderAmounts(types.LimitIntent{
		Side:          side,
		PricePerShare: priceWei,
		Quantity:      sizeWei,
	})
	if err != nil {
		logger.Error("failed to compute amounts", "error", err)
		os.Exit(1)
	}

	order, err := b.BuildOrder(types.KindLimit, types.BuildOrderInput{
		Side:        side,
		TokenID:     *tokenID,
		MakerAmount: amounts.MakerAmount,
		TakerAmount: amounts.TakerAmount,
		FeeRateBps:  uint32(*feeBps),
	})
	if err != nil {
		logger.Error("failed to build order", "error", err)
		os.Exit(1)
	}

	signed, err := b.SignOrder(order, *negRisk, *yieldBearing)
	if err != nil {
		logger.Error("failed to sign order", "error", err)
		os.Exit(1)
	}

	logger.Info("order signed",
		"maker", order.Maker,
		"side", order.Side,
		"price_per_share", fixedpoint.FromWei(amounts.PricePerShare),
		"maker_amount", order.MakerAmount,
		"taker_amount", order.TakerAmount,
	)

	if cfg.DryRun {
		logger.Warn("DRY-RUN MODE — order not submitted")
		out, _ := json.MarshalIndent(signed, "", "  ")
		os.Stdout.Write(append(out, '\n'))
		return
	}

	api := client.New(cfg.API.BaseURL, cfg.API.ApiKey, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := api.CreateOrder(ctx, *signed, types.KindLimit)
	if err != nil {
		logger.Error("failed to submit order", "error", err)
		os.Exit(1)
	}
	if !resp.Success {
		logger.Error("order rejected", "error", resp.ErrorMsg)
		os.Exit(1)
	}
	logger.Info("order live", "order_id", resp.OrderID, "status", resp.Status)
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
