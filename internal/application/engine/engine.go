// Package engine drives the buy → monitor → partial-sell state machine for
// accepted candidates.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mitegun/snipebot/internal/domain"
	"github.com/mitegun/snipebot/internal/ports"
)

const (
	defaultFillPollInterval = 2 * time.Second
	defaultFillPollAttempts = 15
)

// Config holds the trading policy applied to every accepted candidate.
type Config struct {
	BuyAmount            float64 // base currency per position
	Slippage             float64
	TakeProfitMultiplier float64
	MoonbagFraction      float64

	// ConfirmFills gates the take-profit sell on the buy actually filling.
	// Off by default: fire both orders back-to-back and let the venue
	// manage timing.
	ConfirmFills     bool
	FillPollInterval time.Duration
	FillPollAttempts int
}

// Engine executes the order lifecycle against the market venue.
// Each position is owned by the goroutine that calls Execute; the engine
// itself keeps no mutable state across positions.
type Engine struct {
	venue   ports.Venue
	journal ports.Journal
	cfg     Config
}

// New creates an execution engine.
func New(venue ports.Venue, journal ports.Journal, cfg Config) *Engine {
	if cfg.FillPollInterval <= 0 {
		cfg.FillPollInterval = defaultFillPollInterval
	}
	if cfg.FillPollAttempts <= 0 {
		cfg.FillPollAttempts = defaultFillPollAttempts
	}
	return &Engine{venue: venue, journal: journal, cfg: cfg}
}

// Execute runs the state machine for one accepted candidate:
//
//	PendingBuy → Open → PartiallyExited, or → Failed from either state.
//
// Single attempt per order, no retry, no re-price. The returned error mirrors
// pos.Reason on failure; callers log it and move on to the next candidate.
func (e *Engine) Execute(ctx context.Context, cand domain.Candidate, score float64) (domain.Position, error) {
	now := time.Now().UTC()
	pos := domain.Position{
		ID:      uuid.New().String(),
		Address: cand.Address,
		Chain:   cand.Chain,
		Score:   score,
		Intent: domain.TradeIntent{
			Address:              cand.Address,
			Capital:              e.cfg.BuyAmount,
			Slippage:             e.cfg.Slippage,
			TakeProfitMultiplier: e.cfg.TakeProfitMultiplier,
			MoonbagFraction:      e.cfg.MoonbagFraction,
		},
		Status:    domain.StatusPendingBuy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := pos.Intent.Validate(); err != nil {
		return e.fail(ctx, pos, fmt.Errorf("engine.Execute: invalid intent: %w", err))
	}

	price, err := e.venue.GetPrice(ctx)
	if err != nil {
		return e.fail(ctx, pos, fmt.Errorf("engine.Execute: get price: %w", err))
	}

	buySize, limitPrice, err := domain.OrderSize(e.cfg.BuyAmount, price, e.cfg.Slippage)
	if err != nil {
		return e.fail(ctx, pos, fmt.Errorf("engine.Execute: size order: %w", err))
	}

	e.savePosition(ctx, pos)

	buyReq := domain.OrderRequest{Side: domain.SideBuy, Price: limitPrice, Size: buySize}
	buyPlaced, err := e.venue.SubmitOrder(ctx, buyReq)
	e.saveSubmission(ctx, pos.ID, buyReq, buyPlaced.Signature, err)
	if err != nil {
		return e.fail(ctx, pos, fmt.Errorf("engine.Execute: submit buy: %w", err))
	}

	// Entry price is the buy limit, the worst price we accepted to pay.
	pos.Open(limitPrice, buySize, buyPlaced.Signature)
	e.savePosition(ctx, pos)

	slog.Info("engine: buy submitted",
		"address", cand.Address,
		"price", fmt.Sprintf("%.4f", price),
		"limit", fmt.Sprintf("%.4f", limitPrice),
		"size", fmt.Sprintf("%.6f", buySize),
		"signature", buyPlaced.Signature,
	)

	if e.cfg.ConfirmFills {
		if err := e.awaitFill(ctx, buyPlaced.Signature); err != nil {
			return e.fail(ctx, pos, fmt.Errorf("engine.Execute: await buy fill: %w", err))
		}
	}

	targetPrice := domain.TargetPrice(pos.EntryPrice, e.cfg.TakeProfitMultiplier)
	sellSize := domain.SellSize(buySize, e.cfg.MoonbagFraction)

	sellReq := domain.OrderRequest{Side: domain.SideSell, Price: targetPrice, Size: sellSize}
	sellPlaced, err := e.venue.SubmitOrder(ctx, sellReq)
	e.saveSubmission(ctx, pos.ID, sellReq, sellPlaced.Signature, err)
	if err != nil {
		return e.fail(ctx, pos, fmt.Errorf("engine.Execute: submit sell: %w", err))
	}

	pos.PartialExit(targetPrice, sellSize, sellPlaced.Signature)
	e.savePosition(ctx, pos)

	slog.Info("engine: take-profit sell submitted",
		"address", cand.Address,
		"target", fmt.Sprintf("%.4f", targetPrice),
		"size", fmt.Sprintf("%.6f", sellSize),
		"moonbag", fmt.Sprintf("%.6f", buySize-sellSize),
		"signature", sellPlaced.Signature,
	)

	return pos, nil
}

// awaitFill polls the venue until the buy fills, gets rejected, or the
// bounded attempts run out.
func (e *Engine) awaitFill(ctx context.Context, signature string) error {
	for attempt := 0; attempt < e.cfg.FillPollAttempts; attempt++ {
		state, err := e.venue.OrderStatus(ctx, signature)
		if err != nil {
			slog.Warn("engine: order status check failed", "signature", signature, "err", err)
		} else {
			switch state {
			case domain.OrderFilled:
				return nil
			case domain.OrderRejected:
				return fmt.Errorf("buy %s rejected by venue", signature)
			}
		}

		select {
		case <-time.After(e.cfg.FillPollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("buy %s not filled after %d checks", signature, e.cfg.FillPollAttempts)
}

// fail marks the position Failed, journals it and returns the cause.
func (e *Engine) fail(ctx context.Context, pos domain.Position, err error) (domain.Position, error) {
	pos.Fail(err)
	e.savePosition(ctx, pos)
	return pos, err
}

// savePosition journals best-effort: a journal error never fails the trade.
func (e *Engine) savePosition(ctx context.Context, pos domain.Position) {
	if e.journal == nil {
		return
	}
	if err := e.journal.SavePosition(ctx, pos); err != nil {
		slog.Warn("engine: error journaling position", "position", pos.ID, "err", err)
	}
}

func (e *Engine) saveSubmission(ctx context.Context, positionID string, req domain.OrderRequest, signature string, submitErr error) {
	if e.journal == nil {
		return
	}
	errMsg := ""
	if submitErr != nil {
		errMsg = submitErr.Error()
	}
	if err := e.journal.SaveSubmission(ctx, positionID, req, signature, errMsg); err != nil {
		slog.Warn("engine: error journaling submission", "position", positionID, "err", err)
	}
}
