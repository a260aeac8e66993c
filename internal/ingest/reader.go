package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	apperrors "adcrm/internal/errors"
)

// RawTable is a parsed source export: one header row and the data rows below
// it. Column labels keep their source order and may repeat; rows may be
// ragged. Cells are raw text.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the cell at (row, col), or "" when the row is too short.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Column returns column col across all rows, padded with "" for short rows.
func (t *RawTable) Column(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Report exports bury the header row under a title block; these filename
// keywords mark such files (Russian, Ukrainian, English variants).
var reportNameKeywords = []string{"отчет", "звіт", "report"}

// reportHeaderOffsets is the ladder of header-row offsets tried for report
// spreadsheets, in observed-frequency order. The operator offset and 0 are
// appended as a last resort.
var reportHeaderOffsets = []int{7, 4, 5, 6}

// ReadTable sniffs the file format by extension and parses the export into a
// RawTable. skip is the operator-supplied header offset for plainly shaped
// files. For spreadsheets whose name marks them as a report export, a fixed
// ladder of header offsets is tried and the first attempt producing a
// non-empty table wins; individual attempt failures are swallowed. An
// unrecognized extension or exhaustion of every attempt yields a FILE_FORMAT
// error naming the file.
func ReadTable(path string, skip int) (*RawTable, error) {
	ext := strings.ToLower(filepath.Ext(path))
	base := strings.ToLower(filepath.Base(path))

	switch ext {
	case ".csv":
		table, err := readCSV(path, skip)
		if err != nil {
			return nil, apperrors.NewFileFormatError(
				fmt.Sprintf("cannot read %s", filepath.Base(path)), err).
				WithContext("file", filepath.Base(path))
		}
		return table, nil

	case ".xlsx", ".xlsm", ".xls":
		offsets := []int{skip}
		if isReportExport(base) {
			offsets = append(append([]int{}, reportHeaderOffsets...), skip, 0)
		}

		var lastErr error
		for _, offset := range offsets {
			table, err := readSpreadsheet(path, ext, offset)
			if err != nil {
				lastErr = err
				slog.Debug("header offset attempt failed",
					slog.String("file", base),
					slog.Int("offset", offset),
					slog.String("error", err.Error()))
				continue
			}
			return table, nil
		}
		return nil, apperrors.NewFileFormatError(
			fmt.Sprintf("no parseable table in %s", filepath.Base(path)), lastErr).
			WithContext("file", filepath.Base(path))

	default:
		return nil, apperrors.NewFileFormatError(
			fmt.Sprintf("unsupported file type %q for %s", ext, filepath.Base(path)), nil).
			WithContext("file", filepath.Base(path))
	}
}

func isReportExport(basename string) bool {
	for _, kw := range reportNameKeywords {
		if strings.Contains(basename, kw) {
			return true
		}
	}
	return false
}

// readCSV reads a comma-delimited export. A UTF-8 BOM is stripped; files that
// are not valid UTF-8 are re-decoded as windows-1251, the native encoding of
// the panel exports.
func readCSV(path string, skip int) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, decErr := charmap.Windows1251.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, fmt.Errorf("decode windows-1251: %w", decErr)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableAt(rows, skip)
}

// readSpreadsheet reads an Excel export with the header at the given offset.
func readSpreadsheet(path, ext string, offset int) (*RawTable, error) {
	var rows [][]string
	var err error
	if ext == ".xls" {
		rows, err = readXLSRows(path)
	} else {
		rows, err = readXLSXRows(path)
	}
	if err != nil {
		return nil, err
	}
	return tableAt(rows, offset)
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func readXLSRows(path string) ([][]string, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, err
	}

	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	var rows [][]string
	for _, r := range sheet.GetRows() {
		var cells []string
		for _, c := range r.GetCols() {
			cells = append(cells, c.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// tableAt builds a RawTable with the header at row offset. It fails when the
// offset leaves no usable header or no data rows, so the offset ladder can
// move on. A usable header has at least two non-empty labels: the single-cell
// rows of a report title block never qualify.
func tableAt(rows [][]string, offset int) (*RawTable, error) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return nil, fmt.Errorf("header offset %d beyond %d rows", offset, len(rows))
	}

	headers := rows[offset]
	labels := 0
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			labels++
		}
	}
	if labels < 2 {
		return nil, fmt.Errorf("no header row at offset %d", offset)
	}

	data := rows[offset+1:]
	if len(data) == 0 {
		return nil, fmt.Errorf("no data rows below header at offset %d", offset)
	}

	return &RawTable{Headers: headers, Rows: data}, nil
}
