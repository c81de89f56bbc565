package vocabimport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dailyspark/vocab-backend/internal/domain"
)

// Format is a supported upload encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	rawRowType = reflect.TypeOf(RawRow{})
)

// DetectFormat picks the decoder from the declared MIME type, falling back
// to the file extension. Anything unrecognised is treated as a workbook.
func DetectFormat(mimeType, filename string) Format {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case mimeType == "application/json" || ext == ".json":
		return FormatJSON
	case mimeType == "text/csv" || mimeType == "text/plain" || mimeType == "application/csv" || ext == ".csv":
		return FormatCSV
	default:
		return FormatXLSX
	}
}

// DecodeError reports an upload that could not be turned into rows. It is
// fatal for the whole run and matches domain.ErrValidation.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Reason, e.Err)
	}
	return "decode: " + e.Reason
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrValidation, e.Err}
	}
	return []error{domain.ErrValidation}
}

// Decoder turns uploaded bytes into RawRows.
type Decoder struct {
	maxSize int64
	maxRows int
}

// NewDecoder creates a Decoder rejecting payloads over maxSize bytes or
// with more than maxRows data rows. Zero disables the respective limit.
func NewDecoder(maxSize int64, maxRows int) *Decoder {
	return &Decoder{maxSize: maxSize, maxRows: maxRows}
}

// Decode parses data according to DetectFormat(mimeType, filename).
func (d *Decoder) Decode(data []byte, mimeType, filename string) ([]RawRow, error) {
	if d.maxSize > 0 && int64(len(data)) > d.maxSize {
		return nil, FileTooLarge(d.maxSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Reason: "empty file"}
	}

	var (
		rows []RawRow
		err  error
	)
	switch DetectFormat(mimeType, filename) {
	case FormatJSON:
		rows, err = decodeJSON(data)
	case FormatCSV:
		rows, err = decodeCSV(data)
	default:
		rows, err = decodeXLSX(data)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, &DecodeError{Reason: "empty file"}
	}
	if d.maxRows > 0 && len(rows) > d.maxRows {
		return nil, &DecodeError{Reason: fmt.Sprintf("too many rows (%d, max %d)", len(rows), d.maxRows)}
	}
	return rows, nil
}

// ---------------------------------------------------------------------------
// Tabular formats
// ---------------------------------------------------------------------------

func decodeXLSX(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: "invalid spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DecodeError{Reason: "empty file"}
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DecodeError{Reason: "read sheet " + sheets[0], Err: err}
	}
	return tabularRows(records), nil
}

func decodeCSV(data []byte) ([]RawRow, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &DecodeError{Reason: "invalid CSV", Err: err}
	}
	return tabularRows(records), nil
}

// tabularRows keys every record after the first by the header labels.
// Cells missing from short records are empty; cells past the header are
// dropped. Fully blank records are skipped.
func tabularRows(records [][]string) []RawRow {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, label := range records[0] {
		if strings.TrimSpace(label) == "" {
			// Unlabelled columns keep their data under the column letter.
			label, _ = excelize.ColumnNumberToName(i + 1)
		}
		header[i] = label
	}

	rows := make([]RawRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		cells := make([]Cell, len(header))
		for j, label := range header {
			var value string
			if j < len(rec) {
				value = rec[j]
			}
			cells[j] = Cell{Label: label, Value: value}
		}
		rows = append(rows, RawRow{Number: i + 1, Cells: cells})
	}
	return rows
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// decodeJSON reads a top-level array element by element. Objects become
// rows with keys in document order; any other element becomes a row with
// no cells so it fails validation instead of aborting the run.
func decodeJSON(data []byte) ([]RawRow, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))

	tok, err := dec.Token()
	if err != nil {
		return nil, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, &DecodeError{Reason: "top-level JSON value must be an array"}
	}

	var rows []RawRow
	for dec.More() {
		var elem json.RawMessage
		if err := dec.Decode(&elem); err != nil {
			return nil, &DecodeError{Reason: "invalid JSON", Err: err}
		}
		cells, _, err := decodeObject(elem)
		if err != nil {
			return nil, &DecodeError{Reason: "invalid JSON", Err: err}
		}
		rows = append(rows, RawRow{Number: len(rows) + 1, Cells: cells})
	}

	if _, err := dec.Token(); err != nil {
		return nil, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Reason: "invalid JSON", Err: errors.New("unexpected data after top-level array")}
	}

	return rows, nil
}

// decodeObject reads a flat JSON object into ordered cells. Strings are
// taken verbatim, null becomes "", and numbers, booleans and nested values
// keep their JSON text. ok is false when data is not an object.
func decodeObject(data []byte) (cells []Cell, ok bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, false, err
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return nil, false, nil
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, true, err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, true, err
		}
		cells = append(cells, Cell{Label: key, Value: scalarText(raw)})
	}
	return cells, true, nil
}

func scalarText(raw json.RawMessage) string {
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// FileTooLarge is the DecodeError for a payload over limit bytes.
func FileTooLarge(limit int64) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf("file size exceeds %s limit", formatSize(limit))}
}

func formatSize(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
