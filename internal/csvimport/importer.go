// Package csvimport parses bank-export CSV files into transaction rows.
// Column detection is fuzzy and case-insensitive; individual bad rows are
// skipped and counted rather than failing the batch.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// Row is one successfully parsed data row.
type Row struct {
	Date        domain.Date
	Amount      decimal.Decimal
	Description string
}

// Result is the outcome of parsing one file.
type Result struct {
	Rows    []Row
	Skipped int
}

// Header keyword sets for the three logical columns. A header cell matches
// a column when it contains any of that column's keywords.
var (
	dateKeywords        = []string{"date", "time", "when"}
	amountKeywords      = []string{"amount", "sum", "value", "debit", "credit"}
	descriptionKeywords = []string{"desc", "narration", "details", "transaction", "note"}
)

// Parse reads a whole CSV document. The header row must yield all three
// logical columns or the whole file is rejected; after that each data row
// stands alone, and unparseable rows are skipped and counted.
func Parse(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("%w: reading header row: %v", apperrors.ErrParse, err)
	}

	dateCol, ok := findColumn(header, dateKeywords)
	if !ok {
		return Result{}, fmt.Errorf("%w: no date column found in header", apperrors.ErrParse)
	}
	amountCol, ok := findColumn(header, amountKeywords)
	if !ok {
		return Result{}, fmt.Errorf("%w: no amount column found in header", apperrors.ErrParse)
	}
	descCol, ok := findColumn(header, descriptionKeywords)
	if !ok {
		return Result{}, fmt.Errorf("%w: no description column found in header", apperrors.ErrParse)
	}

	var result Result
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}
		row, err := parseRow(record, dateCol, amountCol, descCol)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// findColumn returns the index of the first header cell containing any of
// the keywords, matching case-insensitively.
func findColumn(header []string, keywords []string) (int, bool) {
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i, true
			}
		}
	}
	return 0, false
}

func parseRow(record []string, dateCol, amountCol, descCol int) (Row, error) {
	max := dateCol
	for _, c := range []int{amountCol, descCol} {
		if c > max {
			max = c
		}
	}
	if len(record) <= max {
		return Row{}, fmt.Errorf("%w: row has %d fields", apperrors.ErrParse, len(record))
	}

	date, err := ParseFlexibleDate(record[dateCol])
	if err != nil {
		return Row{}, err
	}
	amount, err := ParseFlexibleAmount(record[amountCol])
	if err != nil {
		return Row{}, err
	}
	description := strings.TrimSpace(record[descCol])
	if description == "" {
		description = "Imported transaction"
	}
	return Row{Date: date, Amount: amount, Description: description}, nil
}
