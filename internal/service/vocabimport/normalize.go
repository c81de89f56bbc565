package vocabimport

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dailyspark/vocab-backend/internal/domain"
)

// maxNumberedExample is the highest N read from example_en_N columns.
const maxNumberedExample = 3

// fieldAliases maps every canonical field to the column labels accepted for
// it, in lookup order.
var fieldAliases = []struct {
	field   string
	aliases []string
	assign  func(row *CanonicalRow, value string)
}{
	{"word", []string{"word", "单词"}, func(r *CanonicalRow, v string) { r.Word = v }},
	{"meaning", []string{"meaning", "释义"}, func(r *CanonicalRow, v string) { r.Meaning = v }},
	{"phonetic", []string{"phonetic", "音标"}, func(r *CanonicalRow, v string) { r.Phonetic = &v }},
	{"partOfSpeech", []string{"partOfSpeech", "词性"}, func(r *CanonicalRow, v string) { r.PartOfSpeech = &v }},
	{"level", []string{"level", "等级"}, func(r *CanonicalRow, v string) { r.Level = &v }},
	{"exampleEn", []string{"example", "例句", "example_en", "example_en_1", "example_en1"}, func(r *CanonicalRow, v string) { r.ExampleEn = &v }},
	{"exampleCn", []string{"example_cn", "例句翻译", "example_cn_1", "example_cn1"}, func(r *CanonicalRow, v string) { r.ExampleCn = &v }},
}

// Normalize maps a RawRow onto the canonical schema. For each field the
// first alias holding a non-blank value wins; values are trimmed and never
// coerced. Unknown columns are dropped and missing fields stay empty.
func Normalize(raw RawRow) CanonicalRow {
	var row CanonicalRow
	for _, f := range fieldAliases {
		if v, ok := lookup(raw, f.aliases); ok {
			f.assign(&row, v)
		}
	}
	row.MoreExamples = moreExamples(raw)
	return row
}

// moreExamples collects the examples after the primary one: numbered
// example_en_N / example_cn_N columns from 2 up, then an "examples" column
// holding a JSON array of {"en", "cn"} objects. A sentence without its
// English text is skipped, as is an examples value that is not such an array.
func moreExamples(raw RawRow) []domain.ExampleText {
	var out []domain.ExampleText

	for n := 2; n <= maxNumberedExample; n++ {
		suffix := strconv.Itoa(n)
		en, ok := lookup(raw, []string{"example_en_" + suffix, "example_en" + suffix})
		if !ok {
			continue
		}
		ex := domain.ExampleText{Sentence: en}
		if cn, ok := lookup(raw, []string{"example_cn_" + suffix, "example_cn" + suffix}); ok {
			ex.Translation = &cn
		}
		out = append(out, ex)
	}

	if v, ok := lookup(raw, []string{"examples", "例句列表"}); ok {
		var listed []struct {
			En string `json:"en"`
			Cn string `json:"cn"`
		}
		if err := json.Unmarshal([]byte(v), &listed); err == nil {
			for _, l := range listed {
				en, cn := strings.TrimSpace(l.En), strings.TrimSpace(l.Cn)
				if en == "" {
					continue
				}
				ex := domain.ExampleText{Sentence: en}
				if cn != "" {
					ex.Translation = &cn
				}
				out = append(out, ex)
			}
		}
	}

	return out
}

func lookup(raw RawRow, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for _, c := range raw.Cells {
			if !strings.EqualFold(strings.TrimSpace(c.Label), alias) {
				continue
			}
			if v := strings.TrimSpace(c.Value); v != "" {
				return v, true
			}
		}
	}
	return "", false
}
