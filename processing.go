// processing.go
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"clickcount/clicks"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// loadFile reads a whole local file into memory. Workbooks are picked by
// extension, everything else is treated as CSV.
func loadFile(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, err
	}
	defer f.Close()

	var data Sheet
	if isExcel(path) {
		data, err = processExcel(f)
	} else {
		data, err = processCSV(f)
	}
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", path, err)
	}
	data.FileName = filepath.Base(path)
	if info, err := f.Stat(); err == nil {
		data.FileSize = info.Size()
	}
	return data, nil
}

func isExcel(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx")
}

func isCSV(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

func processCSV(file io.Reader) (Sheet, error) {
	var data Sheet
	raw, err := io.ReadAll(file)
	if err != nil {
		return data, err
	}
	if !utf8.Valid(raw) {
		return data, ErrInvalidEncoding
	}
	// Spreadsheet exports often start with a BOM that would otherwise end up
	// in the first header name.
	decoded := transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return data, err
	}
	if len(rows) == 0 {
		return data, ErrEmptyFile
	}
	data.Headers = normalizeHeaders(rows[0])
	data.Rows = rows[1:]
	return data, nil
}

func processExcel(file io.Reader) (Sheet, error) {
	var data Sheet
	f, err := excelize.OpenReader(file)
	if err != nil {
		return data, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return data, fmt.Errorf("%w: no sheets", ErrEmptyFile)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return data, err
	}
	if len(rows) == 0 {
		return data, ErrEmptyFile
	}
	data.Headers = normalizeHeaders(rows[0])
	data.Rows = rows[1:]
	return data, nil
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

// Records yields one clicks.Row per data line, keyed by the header names as
// written: " Clicks" does not match the Clicks column. Fields missing from a
// short line are left out of its row; extra fields beyond the header are
// dropped.
func (s Sheet) Records() iter.Seq[clicks.Row] {
	return func(yield func(clicks.Row) bool) {
		for _, rec := range s.Rows {
			row := make(clicks.Row, len(s.Headers))
			for i, h := range s.Headers {
				if i >= len(rec) {
					break
				}
				row[h] = rec[i]
			}
			if !yield(row) {
				return
			}
		}
	}
}
