package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/supplydesk/go-supply-ledger/internal/services"
)

// XLSX renders r as a spreadsheet workbook with four sheets: the raw
// ledger, per-item totals, per-recipient totals, and the recipient-by-item
// cross tabulation.
func XLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Raw ledger replaces the default sheet.
	if err := f.SetSheetName("Sheet1", sheetLedger); err != nil {
		return nil, err
	}
	if err := setRow(f, sheetLedger, 1, toAnys(ledgerHeader)); err != nil {
		return nil, err
	}
	for i, row := range r.Rows {
		vals := []any{
			row.ID,
			row.IssuedAt.Format(timestampLayout),
			row.RecipientName,
			row.ItemName,
			row.Quantity,
			row.Note,
		}
		if err := setRow(f, sheetLedger, i+2, vals); err != nil {
			return nil, err
		}
	}

	if err := writeTotalsSheet(f, sheetItemTotals, "품목", r.ItemTotals); err != nil {
		return nil, err
	}
	if err := writeTotalsSheet(f, sheetRecipientTotals, "수령자", r.RecipientTotals); err != nil {
		return nil, err
	}

	// Cross-tab sheet: recipients down, items across.
	if _, err := f.NewSheet(sheetCrossTab); err != nil {
		return nil, err
	}
	head := append([]any{"수령자 \\ 품목"}, toAnys(r.CrossTab.Items)...)
	if err := setRow(f, sheetCrossTab, 1, head); err != nil {
		return nil, err
	}
	for i, rec := range r.CrossTab.Recipients {
		vals := make([]any, 0, len(r.CrossTab.Items)+1)
		vals = append(vals, rec)
		for _, item := range r.CrossTab.Items {
			vals = append(vals, r.CrossTab.Cells[rec][item])
		}
		if err := setRow(f, sheetCrossTab, i+2, vals); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTotalsSheet(f *excelize.File, name, keyLabel string, totals []services.Total) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := setRow(f, name, 1, []any{keyLabel, "총 수량"}); err != nil {
		return err
	}
	for i, t := range totals {
		if err := setRow(f, name, i+2, []any{t.Name, t.Quantity}); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes vals into row (1-based) starting at column A.
func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

func toAnys(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
