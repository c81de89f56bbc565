package vocabimport

import "strings"

// ValidationOutcome is the verdict on one row: valid when Reasons is empty,
// otherwise it carries the row number and the original RawRow for reporting.
type ValidationOutcome struct {
	RowNumber int
	Row       CanonicalRow
	Reasons   []string
	Raw       RawRow
}

// Valid reports whether the row passed every rule.
func (o ValidationOutcome) Valid() bool {
	return len(o.Reasons) == 0
}

// Failure converts an invalid outcome into a report entry.
func (o ValidationOutcome) Failure() Failure {
	return Failure{
		Row:    o.RowNumber,
		Reason: strings.Join(o.Reasons, ", "),
		Data:   o.Raw,
	}
}

// Validate checks row against the word rules. Each violation yields one
// reason naming the field and the rule, e.g. "word required".
func Validate(rowNumber int, row CanonicalRow, raw RawRow) ValidationOutcome {
	out := ValidationOutcome{RowNumber: rowNumber, Row: row, Raw: raw}
	for _, fe := range row.Validate() {
		out.Reasons = append(out.Reasons, fe.String())
	}
	return out
}
