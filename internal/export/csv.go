// Package export writes classified reviews as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ppiankov/absa/internal/model"
)

// MIMEType is the content type of exported files
const MIMEType = "text/csv"

// DateLayout is the date format of exported files
const DateLayout = "2006-01-02"

const filePrefix = "hasil_absa_"

// FileName derives the export file name from a display label
func FileName(label string) string {
	return BaseName(label) + ".csv"
}

// BaseName is FileName without extension, shared by the report artifacts
func BaseName(label string) string {
	return filePrefix + Stem(label)
}

// Stem is the label part of export file names: lowercase, spaces as '_'
func Stem(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// Header returns the export columns: the fixed columns in order, then
// pass-through columns.
func Header(extraColumns []string, locale model.Locale) []string {
	aspectCol, sentimentCol := "aspek", "sentimen"
	if locale == model.LocaleEN {
		aspectCol, sentimentCol = "aspect", "sentiment"
	}
	header := []string{"name", "star_rating", "date", "review", "predicted_sentiment", aspectCol, sentimentCol}
	return append(header, extraColumns...)
}

// Row renders one record in Header order
func Row(r model.ClassifiedReview, extraColumns int, locale model.Locale) []string {
	rating := ""
	if r.HasRating {
		rating = strconv.FormatFloat(r.Rating, 'f', -1, 64)
	}
	date := ""
	if r.HasDate() {
		date = r.Date.Format(DateLayout)
	}

	row := []string{
		r.Name,
		rating,
		date,
		r.Text,
		r.RawSentiment,
		r.Aspect.Label(locale),
		r.Sentiment.Label(locale),
	}
	for i := 0; i < extraColumns; i++ {
		v := ""
		if i < len(r.Extra) {
			v = r.Extra[i]
		}
		row = append(row, v)
	}
	return row
}

// WriteCSV writes header and records to w. Output depends only on the
// arguments, so identical input produces identical bytes.
func WriteCSV(w io.Writer, extraColumns []string, records []model.ClassifiedReview, locale model.Locale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(extraColumns, locale)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r, len(extraColumns), locale)); err != nil {
			return fmt.Errorf("write row %d: %w", r.Row, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the export for label into dir and returns its path
func WriteFile(dir, label string, extraColumns []string, records []model.ClassifiedReview, locale model.Locale) (path string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path = filepath.Join(dir, FileName(label))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()

	if err := WriteCSV(f, extraColumns, records, locale); err != nil {
		return "", err
	}
	return path, nil
}
