package compression

import (
	"fmt"
	"io"

	"github.com/dargueta/squeeze"
	"github.com/gocarina/gocsv"
)

// TableRow is one line of the CSV rendering of a code table.
type TableRow struct {
	Symbol     string `csv:"symbol"`
	Count      uint64 `csv:"count"`
	CodeLength int    `csv:"code_length"`
	Code       string `csv:"code"`
}

// TableRows lists the entries of a code table in ascending symbol order. The
// frequency table is optional; without it every count is 0.
func TableRows(table *CodeTable, frequencies *FrequencyTable) []TableRow {
	rows := make([]TableRow, 0, table.Len())
	for _, symbol := range table.Symbols() {
		code, _ := table.Lookup(symbol)
		row := TableRow{
			Symbol:     fmt.Sprintf("0x%02x", symbol),
			CodeLength: code.Len(),
			Code:       code.String(),
		}
		if frequencies != nil {
			row.Count = frequencies.Count(symbol)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteTableCSV writes the code table as CSV with a header line.
func WriteTableCSV(output io.Writer, table *CodeTable, frequencies *FrequencyTable) error {
	rows := TableRows(table, frequencies)
	if err := gocsv.Marshal(&rows, output); err != nil {
		return squeeze.ErrIO.Wrap(err)
	}
	return nil
}
