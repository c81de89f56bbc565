package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func ptr(s string) *string { return &s }

func TestWordFields_Validate_Valid(t *testing.T) {
	t.Parallel()

	f := WordFields{Word: "apple", Meaning: "苹果", Phonetic: ptr("/ˈæpl/"), Level: ptr("CET4")}
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestWordFields_Validate_MissingRequired(t *testing.T) {
	t.Parallel()

	errs := WordFields{}.Validate()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].String() != "word required" {
		t.Errorf("errs[0] = %q, want %q", errs[0].String(), "word required")
	}
	if errs[1].String() != "meaning required" {
		t.Errorf("errs[1] = %q, want %q", errs[1].String(), "meaning required")
	}
}

func TestWordFields_Validate_TooLong(t *testing.T) {
	t.Parallel()

	f := WordFields{
		Word:      strings.Repeat("a", MaxWordLen+1),
		Meaning:   "x",
		Level:     ptr(strings.Repeat("b", MaxAttrLen+1)),
		ExampleEn: ptr(strings.Repeat("c", MaxExampleLen+1)),
	}
	errs := f.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "word" || errs[1].Field != "level" || errs[2].Field != "example" {
		t.Errorf("unexpected fields: %v", errs)
	}
}

func TestWordFields_Validate_CountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	// 100 Chinese characters are 300 bytes but within the cap.
	f := WordFields{Word: strings.Repeat("词", MaxWordLen), Meaning: "x"}
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestWordFields_ToWord_WithExample(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	now := time.Now().UTC()
	w := WordFields{
		Word:      "Apple",
		Meaning:   "苹果",
		ExampleEn: ptr("An apple a day."),
		ExampleCn: ptr("一天一苹果。"),
	}.ToWord(&owner, SourceSlugImport, now)

	if w.ID == uuid.Nil {
		t.Fatal("expected generated word ID")
	}
	if w.TextNormalized != "apple" {
		t.Errorf("TextNormalized = %q, want %q", w.TextNormalized, "apple")
	}
	if w.UserID == nil || *w.UserID != owner {
		t.Errorf("UserID = %v, want %v", w.UserID, owner)
	}
	if len(w.Definitions) != 1 || w.Definitions[0].Text != "苹果" || w.Definitions[0].WordID != w.ID {
		t.Errorf("unexpected definitions: %+v", w.Definitions)
	}
	if w.Definitions[0].Language != DefinitionLanguageZH {
		t.Errorf("Language = %q, want %q", w.Definitions[0].Language, DefinitionLanguageZH)
	}
	if len(w.Examples) != 1 || w.Examples[0].Sentence != "An apple a day." || w.Examples[0].WordID != w.ID {
		t.Errorf("unexpected examples: %+v", w.Examples)
	}
	if w.Examples[0].Translation == nil || *w.Examples[0].Translation != "一天一苹果。" {
		t.Errorf("unexpected translation: %v", w.Examples[0].Translation)
	}
}

func TestWordFields_ToWord_NoExampleWithoutEnglishSentence(t *testing.T) {
	t.Parallel()

	w := WordFields{Word: "pear", Meaning: "梨", ExampleCn: ptr("只有翻译")}.ToWord(nil, SourceSlugImport, time.Now())

	if len(w.Examples) != 0 {
		t.Errorf("expected no examples, got %+v", w.Examples)
	}
	if w.UserID != nil {
		t.Errorf("expected system word (nil owner), got %v", w.UserID)
	}
}

func TestWordFields_ToWord_MoreExamplesFollowPrimary(t *testing.T) {
	t.Parallel()

	w := WordFields{
		Word:      "run",
		Meaning:   "跑",
		ExampleEn: ptr("I run daily."),
		MoreExamples: []ExampleText{
			{Sentence: "Run the tests.", Translation: ptr("运行测试。")},
			{Sentence: "The river runs east."},
		},
	}.ToWord(nil, SourceSlugImport, time.Now())

	if len(w.Examples) != 3 {
		t.Fatalf("expected 3 examples, got %d", len(w.Examples))
	}
	want := []string{"I run daily.", "Run the tests.", "The river runs east."}
	for i, ex := range w.Examples {
		if ex.Sentence != want[i] || ex.Position != i || ex.WordID != w.ID {
			t.Errorf("example %d = %+v, want sentence %q at position %d", i, ex, want[i], i)
		}
	}
	if w.Examples[2].Translation != nil {
		t.Errorf("expected nil translation, got %q", *w.Examples[2].Translation)
	}
}

func TestWordFields_ToWord_MoreExamplesWithoutPrimary(t *testing.T) {
	t.Parallel()

	w := WordFields{
		Word:         "walk",
		Meaning:      "走",
		MoreExamples: []ExampleText{{Sentence: "Walk the dog."}},
	}.ToWord(nil, SourceSlugImport, time.Now())

	if len(w.Examples) != 1 || w.Examples[0].Position != 0 {
		t.Errorf("unexpected examples: %+v", w.Examples)
	}
}

func TestWordFields_Validate_MoreExamplesTooLong(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", MaxExampleLen+1)
	errs := WordFields{
		Word:    "a",
		Meaning: "b",
		MoreExamples: []ExampleText{
			{Sentence: "fine"},
			{Sentence: long, Translation: ptr(long)},
		},
	}.Validate()

	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %+v", errs)
	}
	if errs[0].Field != "example3" || errs[1].Field != "example3Cn" {
		t.Errorf("unexpected fields: %+v", errs)
	}
}
