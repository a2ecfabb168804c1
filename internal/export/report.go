package export

import (
	"time"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/services"
)

// Report is the assembled result set every renderer consumes: the raw
// ledger rows plus the precomputed summaries, together with the label
// configuration (organization, department, approver roles) supplied at
// startup.
type Report struct {
	Org         string
	Dept        string
	Month       string // "YYYY-MM", or "" for the full ledger
	GeneratedAt time.Time
	Approvers   []string // ordered approver role labels for the sign-off block

	Rows            []domain.LedgerRow
	ItemTotals      []services.Total
	RecipientTotals []services.Total
	CrossTab        services.CrossTab
}

// Assemble builds a Report from ledger rows, computing the three summaries.
func Assemble(org, dept, month string, approvers []string, rows []domain.LedgerRow) Report {
	return Report{
		Org:             org,
		Dept:            dept,
		Month:           month,
		GeneratedAt:     time.Now(),
		Approvers:       approvers,
		Rows:            rows,
		ItemTotals:      services.GroupByItem(rows),
		RecipientTotals: services.GroupByRecipient(rows),
		CrossTab:        services.BuildCrossTab(rows),
	}
}

// title returns the human heading of the report.
func (r Report) title() string {
	if r.Month == "" {
		return "소모품 지급 내역 (전체)"
	}
	return "소모품 지급 내역 (" + r.Month + ")"
}

// totalQuantity sums the quantities of all aggregated rows.
func (r Report) totalQuantity() int {
	sum := 0
	for _, t := range r.ItemTotals {
		sum += t.Quantity
	}
	return sum
}
