// Package sniper orchestrates the signal-to-trade pipeline: feed → extract →
// score → filter → execute.
package sniper

import (
	"context"
	"log/slog"
	"time"

	"github.com/mitegun/snipebot/internal/domain"
	"github.com/mitegun/snipebot/internal/extract"
	"github.com/mitegun/snipebot/internal/ports"
)

// Config contiene la configuración del orquestador.
type Config struct {
	Interval    time.Duration
	Accounts    []string
	TweetsCount int
	Workers     int
	Filter      FilterConfig
	DryRun      bool
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		Interval:    60 * time.Second,
		TweetsCount: 10,
		Workers:     4,
		Filter:      DefaultFilterConfig(),
	}
}

// CycleResult contains everything produced by one pipeline cycle.
type CycleResult struct {
	Accounts   int
	Posts      int
	Candidates int
	Accepted   int
	Rejected   int
	Failed     int
	Positions  []domain.Position
}

// Sniper es el orquestador principal del loop de escaneo y trading.
type Sniper struct {
	cfg      Config
	feed     ports.FeedSource
	scorer   *RiskScorer
	filter   *Filter
	executor ports.OrderExecutor
	notifier ports.Notifier

	// seen guarda los addresses ya procesados en este run: una posición por
	// address, sin re-entrada entre ciclos.
	seen map[string]struct{}
}

// New crea un Sniper con todas las dependencias inyectadas.
func New(
	cfg Config,
	feed ports.FeedSource,
	scorer *RiskScorer,
	executor ports.OrderExecutor,
	notifier ports.Notifier,
) *Sniper {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	if cfg.TweetsCount <= 0 {
		cfg.TweetsCount = DefaultConfig().TweetsCount
	}
	return &Sniper{
		cfg:      cfg,
		feed:     feed,
		scorer:   scorer,
		filter:   NewFilter(cfg.Filter),
		executor: executor,
		notifier: notifier,
		seen:     make(map[string]struct{}),
	}
}

// Run ejecuta el loop hasta que el contexto se cancele.
// Si cfg.DryRun está activo, solo ejecuta un ciclo.
func (s *Sniper) Run(ctx context.Context) error {
	slog.Info("sniper starting",
		"interval", s.cfg.Interval,
		"accounts", len(s.cfg.Accounts),
		"min_score", s.filter.MinScore(),
		"dry_run", s.cfg.DryRun,
	)

	if err := s.runCycle(ctx); err != nil {
		slog.Error("cycle failed", "err", err)
		if s.cfg.DryRun {
			return err
		}
	}

	if s.cfg.DryRun {
		return nil
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sniper stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve el resultado.
func (s *Sniper) RunOnce(ctx context.Context) (*CycleResult, error) {
	return s.cycle(ctx)
}

// runCycle ejecuta un ciclo completo y notifica los resultados.
func (s *Sniper) runCycle(ctx context.Context) error {
	start := time.Now()

	result, err := s.cycle(ctx)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, result.Positions); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("cycle complete",
		"took", time.Since(start).Round(time.Millisecond),
		"posts", result.Posts,
		"candidates", result.Candidates,
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"failed", result.Failed,
	)
	return nil
}

// cycle recorre las cuentas configuradas, extrae candidatos nuevos y los
// procesa en paralelo. Cada fallo queda contenido en su candidato.
func (s *Sniper) cycle(ctx context.Context) (*CycleResult, error) {
	result := &CycleResult{Accounts: len(s.cfg.Accounts)}

	var batch []domain.Candidate
	for _, account := range s.cfg.Accounts {
		items, err := s.feed.FetchRecent(ctx, account, s.cfg.TweetsCount)
		if err != nil {
			// Feed caído no es fatal: cuenta sin posts este ciclo.
			slog.Warn("feed fetch failed, skipping account", "account", account, "err", err)
			continue
		}
		result.Posts += len(items)

		for _, item := range items {
			for cand := range extract.Unique(extract.Addresses(item.Text, account)) {
				if _, ok := s.seen[cand.Address]; ok {
					continue
				}
				s.seen[cand.Address] = struct{}{}
				batch = append(batch, cand)
			}
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}
	}
	result.Candidates = len(batch)

	if len(batch) == 0 {
		return result, nil
	}

	for _, out := range s.processConcurrent(ctx, batch) {
		switch {
		case !out.accepted:
			result.Rejected++
		case out.err != nil:
			result.Accepted++
			result.Failed++
			result.Positions = append(result.Positions, out.position)
		default:
			result.Accepted++
			result.Positions = append(result.Positions, out.position)
		}
	}

	return result, nil
}

// candidateOutcome es el resultado de evaluar y (si aplica) ejecutar un candidato.
type candidateOutcome struct {
	accepted bool
	position domain.Position
	err      error
}

// processConcurrent evalúa los candidatos con un worker pool acotado.
// Cada posición pertenece a la goroutine que la creó; no hay estado mutable
// compartido entre posiciones.
func (s *Sniper) processConcurrent(ctx context.Context, batch []domain.Candidate) []candidateOutcome {
	workers := s.cfg.Workers
	if workers > len(batch) {
		workers = len(batch)
	}

	workCh := make(chan domain.Candidate, len(batch))
	resultCh := make(chan candidateOutcome, len(batch))

	for i := 0; i < workers; i++ {
		go func() {
			for cand := range workCh {
				resultCh <- s.process(ctx, cand)
			}
		}()
	}

	for _, cand := range batch {
		workCh <- cand
	}
	close(workCh)

	outcomes := make([]candidateOutcome, 0, len(batch))
	for range batch {
		outcomes = append(outcomes, <-resultCh)
	}
	return outcomes
}

// process evalúa un candidato: score → filter → execute.
func (s *Sniper) process(ctx context.Context, cand domain.Candidate) candidateOutcome {
	report := s.scorer.Score(ctx, cand)

	if !s.filter.Accept(report) {
		slog.Info("skipping contract",
			"address", cand.Address,
			"score", report.ContractScore,
			"min_score", s.filter.MinScore(),
		)
		return candidateOutcome{accepted: false}
	}

	slog.Info("contract passed",
		"address", cand.Address,
		"score", report.ContractScore,
		"rep_score", report.Reputation.OverallScore,
		"rep_followers", report.Reputation.KnownFollowers,
		"rep_trust", report.Reputation.TrustLevel,
	)

	pos, err := s.executor.Execute(ctx, cand, report.ContractScore)
	if err != nil {
		slog.Warn("position failed", "address", cand.Address, "err", err)
	}
	return candidateOutcome{accepted: true, position: pos, err: err}
}
