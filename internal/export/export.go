// Package export renders a ledger result set into downloadable byte
// streams: delimited text (CSV with a UTF-8 byte-order mark), a multi-sheet
// spreadsheet workbook, and a paginated printable report. All renderers are
// pure transformations of the Report value handed in; they never touch the
// database and are fully materialized in memory.
package export

import "fmt"

// Kind identifies one of the supported export formats.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
	KindPDF  Kind = "pdf"
)

// Content types for the download surface.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Sheet names of the workbook export (also used as PDF section headings).
const (
	sheetLedger          = "지급내역"
	sheetItemTotals      = "품목별 합계"
	sheetRecipientTotals = "수령자별 합계"
	sheetCrossTab        = "교차집계"
)

// ledgerHeader is the column header shared by the CSV export and the raw
// ledger sheet of the workbook.
var ledgerHeader = []string{"번호", "일시", "수령자", "품목", "수량", "비고"}

// timestampLayout is how issuance timestamps are rendered in exports.
const timestampLayout = "2006-01-02 15:04"

// ContentType returns the MIME content type for k.
func ContentType(k Kind) string {
	switch k {
	case KindXLSX:
		return ContentTypeXLSX
	case KindPDF:
		return ContentTypePDF
	default:
		return ContentTypeCSV
	}
}

// Filename builds the download filename for k, scoped to the given month
// key ("YYYY-MM"); an empty month means the full ledger.
func Filename(k Kind, month string) string {
	if month == "" {
		month = "all"
	}
	return fmt.Sprintf("supply_ledger_%s.%s", month, k)
}
