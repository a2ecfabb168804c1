package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// utf8BOM makes spreadsheet applications detect the encoding; without it,
// Excel on Windows mangles Hangul in plain CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV renders the raw ledger of r as delimited text: a UTF-8 byte-order
// mark, a header row, then one record per ledger row with the timestamp
// formatted as "2006-01-02 15:04". Quoting follows encoding/csv, i.e.
// standard CSV rules.
func CSV(r Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(ledgerHeader); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		rec := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.IssuedAt.Format(timestampLayout),
			row.RecipientName,
			row.ItemName,
			strconv.Itoa(row.Quantity),
			row.Note,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
