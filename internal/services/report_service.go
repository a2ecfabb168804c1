// Package services – ReportService
//
// This file implements the read-only query and aggregation engine: filtered
// ledger listings, per-item and per-recipient quantity sums, the
// recipient-by-item cross tabulation, and month partitioning. Nothing here
// mutates state; every call re-reads from the store.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
)

// Total is one row of a group-by-sum result: a grouping key (recipient or
// item name) and the summed quantity.
type Total struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CrossTab is the two-dimensional quantity sum keyed by (recipient, item).
// Recipients and Items hold the axis orders (first appearance in the input);
// Cells[recipient][item] is the summed quantity, with missing combinations
// implicitly zero.
type CrossTab struct {
	Recipients []string                  `json:"recipients"`
	Items      []string                  `json:"items"`
	Cells      map[string]map[string]int `json:"cells"`
}

// ReportService implements the read-only reporting use-cases.
type ReportService struct {
	// DB is the database handle used for all reads.
	DB *gorm.DB
}

// ListLogs returns the joined ledger view matching f, newest first.
func (s *ReportService) ListLogs(ctx context.Context, f repo.LogFilter) ([]domain.LedgerRow, error) {
	return repo.ListLogs(ctx, s.DB, f)
}

// LogsForMonth returns the ledger rows whose issuance date falls in the
// given "YYYY-MM" month. An unparsable month yields an empty result.
func (s *ReportService) LogsForMonth(ctx context.Context, month string) ([]domain.LedgerRow, error) {
	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return []domain.LedgerRow{}, nil
	}
	return repo.ListLogs(ctx, s.DB, repo.LogFilter{
		From: start,
		To:   start.AddDate(0, 1, -1),
	})
}

// Months returns the "YYYY-MM" keys of every month with at least one log,
// ascending. These are the selectable reporting periods.
func (s *ReportService) Months(ctx context.Context) ([]string, error) {
	return repo.DistinctMonths(ctx, s.DB)
}

// MonthKey derives the "YYYY-MM" grouping key from a timestamp. It returns
// "" for the zero time, which marks a row whose original timestamp failed to
// parse; such rows are excluded from all aggregation.
func MonthKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}

// GroupByItem sums quantity per distinct item name, descending by summed
// quantity. Ties keep the order in which the item first appeared in rows
// (stable). Rows without a usable timestamp are skipped and logged.
func GroupByItem(rows []domain.LedgerRow) []Total {
	return groupBy(rows, func(r domain.LedgerRow) string { return r.ItemName })
}

// GroupByRecipient mirrors GroupByItem keyed by recipient name.
func GroupByRecipient(rows []domain.LedgerRow) []Total {
	return groupBy(rows, func(r domain.LedgerRow) string { return r.RecipientName })
}

func groupBy(rows []domain.LedgerRow, key func(domain.LedgerRow) string) []Total {
	sums := map[string]int{}
	var order []string
	for _, r := range rows {
		if skipRow(r) {
			continue
		}
		k := key(r)
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += r.Quantity
	}

	out := make([]Total, 0, len(order))
	for _, k := range order {
		out = append(out, Total{Name: k, Quantity: sums[k]})
	}
	// Insertion sort keeps equal sums in first-seen order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Quantity > out[j-1].Quantity; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// BuildCrossTab computes the recipient-by-item quantity pivot over rows.
// Axis orders follow first appearance in the input; absent pairs read as
// zero through the Cells map.
func BuildCrossTab(rows []domain.LedgerRow) CrossTab {
	ct := CrossTab{Cells: map[string]map[string]int{}}
	seenRec := map[string]bool{}
	seenItem := map[string]bool{}

	for _, r := range rows {
		if skipRow(r) {
			continue
		}
		if !seenRec[r.RecipientName] {
			seenRec[r.RecipientName] = true
			ct.Recipients = append(ct.Recipients, r.RecipientName)
		}
		if !seenItem[r.ItemName] {
			seenItem[r.ItemName] = true
			ct.Items = append(ct.Items, r.ItemName)
		}
		row := ct.Cells[r.RecipientName]
		if row == nil {
			row = map[string]int{}
			ct.Cells[r.RecipientName] = row
		}
		row[r.ItemName] += r.Quantity
	}
	return ct
}

// skipRow reports whether a ledger row must be excluded from aggregation
// because its timestamp is unusable. Legacy imports from the CSV era can
// carry rows that failed to parse; they stay visible in raw listings but
// never contribute to reports.
func skipRow(r domain.LedgerRow) bool {
	if r.IssuedAt.IsZero() {
		log.Warn().Uint("log_id", r.ID).Msg("skipping ledger row with unparsable timestamp")
		return true
	}
	return false
}
