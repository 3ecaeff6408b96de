// Package dataset reads review exports into model.Review rows.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/absa/internal/model"
)

var (
	// ErrMissingColumn is returned when a required header is absent
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyFile is returned when the input has no header row
	ErrEmptyFile = errors.New("empty file")
)

// Required input columns
const (
	ColName      = "name"
	ColRating    = "star_rating"
	ColDate      = "date"
	ColReview    = "review"
	ColSentiment = "predicted_sentiment"
)

var requiredColumns = []string{ColName, ColRating, ColDate, ColReview, ColSentiment}

// derivedColumns are written by the exporter and recomputed on load.
var derivedColumns = map[string]bool{
	"aspect":    true,
	"aspek":     true,
	"sentiment": true,
	"sentimen":  true,
}

// Table is the raw content of a review file
type Table struct {
	ExtraColumns []string
	Reviews      []model.Review
}

// Read parses a CSV review export with a header row. Cells that cannot be
// interpreted (dates, ratings) become empty values instead of errors.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	var extraIdx []int
	table := &Table{}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.TrimSpace(h)
		key := strings.ToLower(name)
		if _, dup := idx[key]; dup {
			name, key = dedupe(name, idx)
			idx[key] = i
			extraIdx = append(extraIdx, i)
			table.ExtraColumns = append(table.ExtraColumns, name)
			continue
		}
		idx[key] = i
		if !isRequired(key) && !derivedColumns[key] {
			extraIdx = append(extraIdx, i)
			table.ExtraColumns = append(table.ExtraColumns, name)
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	cell := func(record []string, i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("read dataset line %d: %w", row+1, err)
		}

		review := model.Review{
			Row:          row,
			Name:         cell(record, idx[ColName]),
			Date:         ParseDate(cell(record, idx[ColDate])),
			Text:         cell(record, idx[ColReview]),
			RawSentiment: cell(record, idx[ColSentiment]),
		}
		review.Rating, review.HasRating = parseRating(cell(record, idx[ColRating]))

		if len(extraIdx) > 0 {
			review.Extra = make([]string, len(extraIdx))
			for j, i := range extraIdx {
				review.Extra[j] = cell(record, i)
			}
		}

		table.Reviews = append(table.Reviews, review)
	}

	return table, nil
}

func parseRating(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// dedupe renames a repeated header to name.1, name.2, ... and returns the
// new name with its lookup key
func dedupe(name string, seen map[string]int) (string, string) {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s.%d", name, n)
		key := strings.ToLower(candidate)
		if _, taken := seen[key]; !taken {
			return candidate, key
		}
	}
}

func isRequired(col string) bool {
	for _, c := range requiredColumns {
		if c == col {
			return true
		}
	}
	return false
}
