package export

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"

	"github.com/supplydesk/go-supply-ledger/internal/services"
)

// pdfFontFamily is the internal family name registered for the configured
// UTF-8 TTF. Hangul needs a CJK-capable font; the built-in core fonts only
// cover Latin-1.
const pdfFontFamily = "report"

// PDF renders r as a paginated A4 document: title block, approver sign-off
// table, summary totals, per-item and per-recipient tables, and the full
// ledger. fontPath points to a TTF used for all text; when it is empty or
// unloadable the renderer falls back to the built-in core font instead of
// failing the export (the output degrades but the download still works).
func PDF(r Report, fontPath string) ([]byte, error) {
	doc, family := newPDFDoc(fontPath)

	doc.SetAutoPageBreak(true, 18)
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont(family, "", 8)
		doc.CellFormat(0, 8, fmt.Sprintf("%d / {nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	// Title block.
	doc.SetFont(family, "", 16)
	doc.CellFormat(0, 10, r.title(), "", 1, "C", false, 0, "")
	doc.SetFont(family, "", 10)
	doc.CellFormat(0, 6, r.Org+" / "+r.Dept, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, "작성일: "+r.GeneratedAt.Format("2006-01-02"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	// Approver sign-off table: one labelled row of roles, one empty row for
	// signatures, right-aligned like the paper form it replaces.
	if len(r.Approvers) > 0 {
		colW := 28.0
		tableW := colW * float64(len(r.Approvers))
		startX := 210 - 10 - tableW // A4 width minus right margin
		doc.SetX(startX)
		doc.SetFont(family, "", 9)
		for _, role := range r.Approvers {
			doc.CellFormat(colW, 7, role, "1", 0, "C", false, 0, "")
		}
		doc.Ln(-1)
		doc.SetX(startX)
		for range r.Approvers {
			doc.CellFormat(colW, 16, "", "1", 0, "C", false, 0, "")
		}
		doc.Ln(8)
	}

	// Summary line.
	doc.SetFont(family, "", 10)
	doc.CellFormat(0, 7, fmt.Sprintf("총 지급 건수: %d건   총 수량: %d", len(r.Rows), r.totalQuantity()), "", 1, "L", false, 0, "")
	doc.Ln(2)

	writeTotalsTable(doc, family, sheetItemTotals, "품목", r.ItemTotals)
	writeTotalsTable(doc, family, sheetRecipientTotals, "수령자", r.RecipientTotals)

	// Full ledger.
	doc.SetFont(family, "", 11)
	doc.CellFormat(0, 8, sheetLedger, "", 1, "L", false, 0, "")
	doc.SetFont(family, "", 8)
	widths := []float64{14, 34, 30, 46, 16, 50}
	for i, h := range ledgerHeader {
		doc.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
	for _, row := range r.Rows {
		cells := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.IssuedAt.Format(timestampLayout),
			row.RecipientName,
			row.ItemName,
			strconv.Itoa(row.Quantity),
			row.Note,
		}
		for i, v := range cells {
			align := "L"
			if i == 0 || i == 4 {
				align = "R"
			}
			doc.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newPDFDoc creates the document and registers the configured font,
// returning the family name to render with. Any font problem degrades to
// the core font.
func newPDFDoc(fontPath string) (*fpdf.Fpdf, string) {
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			doc := fpdf.New("P", "mm", "A4", "")
			doc.AddUTF8Font(pdfFontFamily, "", fontPath)
			if doc.Err() {
				log.Warn().Str("font", fontPath).Msg("pdf font failed to load; using core font")
			} else {
				return doc, pdfFontFamily
			}
		} else {
			log.Warn().Str("font", fontPath).Err(err).Msg("pdf font not found; using core font")
		}
	}
	return fpdf.New("P", "mm", "A4", ""), "Helvetica"
}

func writeTotalsTable(doc *fpdf.Fpdf, family, heading, keyLabel string, totals []services.Total) {
	doc.SetFont(family, "", 11)
	doc.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")
	doc.SetFont(family, "", 9)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(70, 6, keyLabel, "1", 0, "C", true, 0, "")
	doc.CellFormat(30, 6, "총 수량", "1", 1, "C", true, 0, "")
	for _, t := range totals {
		doc.CellFormat(70, 6, t.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, strconv.Itoa(t.Quantity), "1", 1, "R", false, 0, "")
	}
	doc.Ln(3)
}
