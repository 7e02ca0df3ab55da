package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"SigPull/internal/domain/models"
	"SigPull/internal/domain/repository"
)

// AnalysesDDL is the idempotent schema for the analysis history table.
// The full record is kept as a JSON string column next to the queryable
// scalar columns so the API can return analyses unchanged.
func AnalysesDDL(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			ts DateTime,
			symbol LowCardinality(String),
			price Float64,
			decision LowCardinality(String),
			buy_score Float64,
			sell_score Float64,
			market_open UInt8,
			analysis String
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY (symbol, ts)`, database, table),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s_summary (
			ts DateTime,
			symbol_count UInt32,
			buy_pct Float64,
			sell_pct Float64,
			neutral_pct Float64,
			sessions String
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY ts`, database, table),
	}
}

// ClickHouseHistory persists scan results to ClickHouse.
type ClickHouseHistory struct {
	db    *sql.DB
	table string
}

// NewClickHouseHistory creates ClickHouse history storage. The table name is
// expected to be database-qualified ("sigpull.analyses").
func NewClickHouseHistory(db *sql.DB, table string) *ClickHouseHistory {
	return &ClickHouseHistory{db: db, table: table}
}

func (s *ClickHouseHistory) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

// Store inserts every symbol analysis of the cycle plus one summary row.
func (s *ClickHouseHistory) Store(ctx context.Context, r *models.ScanResult) error {
	if r == nil {
		return nil
	}
	if err := s.storeAnalyses(ctx, r.Symbols); err != nil {
		return err
	}
	return s.storeSummary(ctx, r.Summary)
}

func (s *ClickHouseHistory) storeAnalyses(ctx context.Context, analyses []models.SymbolAnalysis) error {
	if len(analyses) == 0 {
		return nil
	}
	values := make([]string, 0, len(analyses))
	args := make([]interface{}, 0, len(analyses)*8)
	for _, a := range analyses {
		blob, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal analysis %s: %w", a.Symbol, err)
		}
		price := 0.0
		if a.Price != nil {
			price = *a.Price
		}
		open := uint8(0)
		if a.MarketOpen {
			open = 1
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			a.Time,
			a.Symbol,
			price,
			string(a.FinalSignal.Decision),
			a.Dominance.Buy,
			a.Dominance.Sell,
			open,
			string(blob),
		)
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, price, decision, buy_score, sell_score, market_open, analysis) VALUES %s",
		s.table, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert analyses: %w", err)
	}
	return nil
}

func (s *ClickHouseHistory) storeSummary(ctx context.Context, sum models.AggregateSummary) error {
	q := fmt.Sprintf("INSERT INTO %s_summary (ts, symbol_count, buy_pct, sell_pct, neutral_pct, sessions) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		sum.Time,
		uint32(sum.SymbolCount),
		sum.BuyPercent,
		sum.SellPercent,
		sum.NeutralPercent,
		strings.Join(sum.ActiveSessions, ","),
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// QueryAnalyses reads persisted analyses back, newest first.
func (s *ClickHouseHistory) QueryAnalyses(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.SymbolAnalysis, error) {
	q := fmt.Sprintf("SELECT analysis FROM %s WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SymbolAnalysis
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var a models.SymbolAnalysis
		if err := json.Unmarshal([]byte(blob), &a); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *ClickHouseHistory) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseHistory) Close() error {
	return nil // Managed by pkg
}

var (
	_ repository.HistorySink    = (*ClickHouseHistory)(nil)
	_ repository.HistoryQuerier = (*ClickHouseHistory)(nil)
)
