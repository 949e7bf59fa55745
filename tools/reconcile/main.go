// Command reconcile replays the archived fund ledger trail and checks the
// derived account position against the accounting invariant
// total = available + occupied + frozen.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type config struct {
	dbURL          string
	table          string
	outPath        string
	openTotal      float64
	openAvailable  float64
	openOccupied   float64
	openFrozen     float64
	toleranceCents float64
}

type ledgerRow struct {
	ID        string
	Type      string
	Amount    float64
	RelatedNo string
	Note      string
	CreatedAt time.Time
}

type position struct {
	Total     float64
	Available float64
	Occupied  float64
	Frozen    float64
}

func main() {
	cfg := loadConfig()
	if cfg.dbURL == "" {
		fmt.Fprintln(os.Stderr, "reconcile: -db is required")
		os.Exit(2)
	}

	db, err := sql.Open("pgx", cfg.dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconcile: open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rows, err := loadLedger(ctx, db, cfg.table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconcile: load ledger: %v\n", err)
		os.Exit(1)
	}

	pos := position{
		Total:     cfg.openTotal,
		Available: cfg.openAvailable,
		Occupied:  cfg.openOccupied,
		Frozen:    cfg.openFrozen,
	}
	sums := map[string]float64{}
	for _, row := range rows {
		pos = apply(pos, row)
		sums[row.Type] += row.Amount
	}

	drift := pos.Total - (pos.Available + pos.Occupied + pos.Frozen)
	if drift < 0 {
		drift = -drift
	}

	fmt.Printf("records=%d total=%.2f available=%.2f occupied=%.2f frozen=%.2f drift=%.2f\n",
		len(rows), pos.Total, pos.Available, pos.Occupied, pos.Frozen, drift)
	for _, t := range []string{"deposit", "occupy", "release", "freeze", "deduct", "refund"} {
		fmt.Printf("  %-8s %.2f\n", t, sums[t])
	}

	if cfg.outPath != "" {
		if err := writeCSV(cfg.outPath, rows, pos); err != nil {
			fmt.Fprintf(os.Stderr, "reconcile: write csv: %v\n", err)
			os.Exit(1)
		}
	}

	if drift > cfg.toleranceCents/100 {
		fmt.Fprintf(os.Stderr, "reconcile: invariant violated, drift %.2f\n", drift)
		os.Exit(1)
	}
}

func loadConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.dbURL, "db", os.Getenv("LNG_DATABASE_URL"), "postgres connection url")
	flag.StringVar(&cfg.table, "table", "fund_ledgers", "ledger archive table")
	flag.StringVar(&cfg.outPath, "out", "", "optional csv report path")
	flag.Float64Var(&cfg.openTotal, "open-total", 0, "opening total balance")
	flag.Float64Var(&cfg.openAvailable, "open-available", 0, "opening available balance")
	flag.Float64Var(&cfg.openOccupied, "open-occupied", 0, "opening occupied balance")
	flag.Float64Var(&cfg.openFrozen, "open-frozen", 0, "opening frozen balance")
	flag.Float64Var(&cfg.toleranceCents, "tolerance-cents", 1, "allowed drift in cents")
	flag.Parse()
	return cfg
}

func loadLedger(ctx context.Context, db *sql.DB, table string) ([]ledgerRow, error) {
	query := fmt.Sprintf(`
SELECT id, type, amount, related_no, note, created_at
FROM %s
ORDER BY created_at ASC, id ASC`, table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ledgerRow
	for rows.Next() {
		var row ledgerRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Amount, &row.RelatedNo, &row.Note, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// apply mirrors the account transitions: deposits credit, occupy holds,
// release returns the hold, freeze converts a hold, deduct consumes frozen
// funds, refund returns available funds to the customer.
func apply(pos position, row ledgerRow) position {
	switch row.Type {
	case "deposit":
		pos.Total += row.Amount
		pos.Available += row.Amount
	case "occupy":
		pos.Available -= row.Amount
		pos.Occupied += row.Amount
	case "release":
		pos.Occupied -= row.Amount
		pos.Available += row.Amount
	case "freeze":
		pos.Occupied -= row.Amount
		pos.Frozen += row.Amount
	case "deduct":
		pos.Frozen -= row.Amount
		pos.Total -= row.Amount
	case "refund":
		pos.Available -= row.Amount
		pos.Total -= row.Amount
	}
	return pos
}

func writeCSV(path string, rows []ledgerRow, pos position) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	_ = writer.Write([]string{"id", "type", "amount", "related_no", "note", "created_at"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.ID,
			row.Type,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.RelatedNo,
			row.Note,
			row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	_ = writer.Write([]string{})
	_ = writer.Write([]string{"total", strconv.FormatFloat(pos.Total, 'f', 2, 64)})
	_ = writer.Write([]string{"available", strconv.FormatFloat(pos.Available, 'f', 2, 64)})
	_ = writer.Write([]string{"occupied", strconv.FormatFloat(pos.Occupied, 'f', 2, 64)})
	_ = writer.Write([]string{"frozen", strconv.FormatFloat(pos.Frozen, 'f', 2, 64)})
	writer.Flush()
	return writer.Error()
}
