package vocabimport

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Words"

// TemplateHeaders are the column labels written to the import template,
// one per canonical field.
var TemplateHeaders = []string{"word", "meaning", "phonetic", "partOfSpeech", "level", "example", "example_cn"}

var templateSample = []string{
	"apple", "苹果", "/ˈæp.əl/", "n.", "CET4",
	"An apple a day keeps the doctor away.", "一天一苹果，医生远离我。",
}

// Template renders an xlsx workbook with the canonical header row and one
// sample row. Decode accepts it unchanged.
func Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(TemplateHeaders))
	for i, h := range TemplateHeaders {
		header[i] = h
	}
	sample := make([]any, len(templateSample))
	for i, v := range templateSample {
		sample[i] = v
	}

	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetSheetRow(templateSheet, "A2", &sample); err != nil {
		return nil, fmt.Errorf("write sample: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(TemplateHeaders))
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(templateSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(templateSheet, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
