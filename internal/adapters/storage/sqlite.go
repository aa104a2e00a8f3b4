package storage

// sqlite.go — journal de trading del run.
//
// Por defecto abre ":memory:": el journal vive lo que vive el proceso y el
// estado de cada posición queda consultable para el resumen de cierre. Un DSN
// de archivo es opt-in del operador para conservar el registro entre runs.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mitegun/snipebot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por posición, upsert en cada transición de estado
CREATE TABLE IF NOT EXISTS positions (
    id            TEXT PRIMARY KEY,
    address       TEXT NOT NULL,
    chain         TEXT NOT NULL,
    score         REAL NOT NULL DEFAULT 0,
    capital       REAL NOT NULL DEFAULT 0,
    slippage      REAL NOT NULL DEFAULT 0,
    take_profit   REAL NOT NULL DEFAULT 0,
    moonbag       REAL NOT NULL DEFAULT 0,
    entry_price   REAL NOT NULL DEFAULT 0,
    size          REAL NOT NULL DEFAULT 0,
    target_price  REAL NOT NULL DEFAULT 0,
    sell_size     REAL NOT NULL DEFAULT 0,
    buy_sig       TEXT NOT NULL DEFAULT '',
    sell_sig      TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL,
    reason        TEXT NOT NULL DEFAULT '',
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL
);

-- Un registro por envío de orden, incluidos los rechazados
CREATE TABLE IF NOT EXISTS submissions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    position_id  TEXT NOT NULL,
    side         TEXT NOT NULL,
    price        REAL NOT NULL,
    size         REAL NOT NULL,
    signature    TEXT NOT NULL DEFAULT '',
    error        TEXT NOT NULL DEFAULT '',
    submitted_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_status ON positions(status);
CREATE INDEX IF NOT EXISTS idx_sub_position     ON submissions(position_id);
`

// Journal implementa ports.Journal usando SQLite (pure Go, sin CGo).
type Journal struct {
	db *sql.DB
}

// NewJournal abre (o crea) la base en el DSN dado y aplica el schema.
func NewJournal(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.NewJournal: open %q: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewJournal: apply schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close cierra la base.
func (j *Journal) Close() error {
	return j.db.Close()
}

// SavePosition hace upsert del estado actual de la posición.
func (j *Journal) SavePosition(ctx context.Context, p domain.Position) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO positions (
			id, address, chain, score, capital, slippage, take_profit, moonbag,
			entry_price, size, target_price, sell_size, buy_sig, sell_sig,
			status, reason, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_price  = excluded.entry_price,
			size         = excluded.size,
			target_price = excluded.target_price,
			sell_size    = excluded.sell_size,
			buy_sig      = excluded.buy_sig,
			sell_sig     = excluded.sell_sig,
			status       = excluded.status,
			reason       = excluded.reason,
			updated_at   = excluded.updated_at`,
		p.ID, p.Address, string(p.Chain), p.Score,
		p.Intent.Capital, p.Intent.Slippage, p.Intent.TakeProfitMultiplier, p.Intent.MoonbagFraction,
		p.EntryPrice, p.Size, p.TargetPrice, p.SellSize, p.BuySignature, p.SellSignature,
		string(p.Status), p.Reason, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("storage.SavePosition: %w", err)
	}
	return nil
}

// SaveSubmission registra un envío de orden con su resultado.
func (j *Journal) SaveSubmission(ctx context.Context, positionID string, req domain.OrderRequest, signature, submitErr string) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO submissions (position_id, side, price, size, signature, error, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		positionID, string(req.Side), req.Price, req.Size, signature, submitErr, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.SaveSubmission: %w", err)
	}
	return nil
}

// Positions devuelve todas las posiciones del run, más recientes primero.
func (j *Journal) Positions(ctx context.Context) ([]domain.Position, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, address, chain, score, capital, slippage, take_profit, moonbag,
		       entry_price, size, target_price, sell_size, buy_sig, sell_sig,
		       status, reason, created_at, updated_at
		FROM positions
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage.Positions: %w", err)
	}
	defer rows.Close()

	var result []domain.Position
	for rows.Next() {
		var p domain.Position
		var chain, status string
		if err := rows.Scan(
			&p.ID, &p.Address, &chain, &p.Score,
			&p.Intent.Capital, &p.Intent.Slippage, &p.Intent.TakeProfitMultiplier, &p.Intent.MoonbagFraction,
			&p.EntryPrice, &p.Size, &p.TargetPrice, &p.SellSize, &p.BuySignature, &p.SellSignature,
			&status, &p.Reason, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage.Positions: scan: %w", err)
		}
		p.Chain = domain.Chain(chain)
		p.Status = domain.PositionStatus(status)
		p.Intent.Address = p.Address
		result = append(result, p)
	}
	return result, rows.Err()
}
