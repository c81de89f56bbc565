package vocabimport

import (
	"bytes"
	"encoding/json"

	"github.com/dailyspark/vocab-backend/internal/domain"
)

// Cell is one labelled value of a decoded row.
type Cell struct {
	Label string
	Value string
}

// RawRow is a loosely-typed row as decoded from the upload: cells in file
// order, keyed by the header label (or JSON key). Number is the 1-based
// data-row position in the source file, header excluded; skipped blank
// rows still consume a number.
type RawRow struct {
	Number int
	Cells  []Cell
}

// MarshalJSON renders the row as a JSON object with keys in file order.
func (r RawRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back into cells, preserving key order.
// Number is not part of the encoding and is left untouched.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	cells, ok, err := decodeObject(data)
	if err != nil {
		return err
	}
	if !ok {
		return &json.UnmarshalTypeError{Value: "non-object", Type: rawRowType}
	}
	r.Cells = cells
	return nil
}

// CanonicalRow is a RawRow mapped onto the fixed import schema.
type CanonicalRow = domain.WordFields

// Upload is a file handed to the pipeline.
type Upload struct {
	Data     []byte
	MimeType string
	Filename string
}

// Failure describes one row that did not pass validation.
type Failure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Data   RawRow `json:"data"`
}

// ImportSummary is the result of one pipeline run. FailedCount is the true
// number of invalid rows even when Failures has been truncated.
type ImportSummary struct {
	TotalRows      int       `json:"total"`
	ImportedCount  int       `json:"imported"`
	DuplicateCount int       `json:"duplicates"`
	FailedCount    int       `json:"failed"`
	Failures       []Failure `json:"errors"`
}
