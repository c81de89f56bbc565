package domain

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefinitionLanguageZH is the language tag stored for learner-supplied meanings.
const DefinitionLanguageZH = "zh"

// Field length caps shared by single-word creation and bulk import.
const (
	MaxWordLen    = 100
	MaxMeaningLen = 2000
	MaxAttrLen    = 100
	MaxExampleLen = 2000
)

// Source slugs recorded on words to tell how they entered the word book.
const (
	SourceSlugImport = "import"
	SourceSlugUser   = "user"
)

// Word is a vocabulary item in a user's word book. UserID is nil for
// system words that belong to nobody.
type Word struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	Text           string
	TextNormalized string
	Phonetic       *string
	PartOfSpeech   *string
	Level          *string
	SourceSlug     string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Definitions []Definition
	Examples    []Example
}

// Definition is one meaning of a word.
type Definition struct {
	ID        uuid.UUID
	WordID    uuid.UUID
	Text      string
	Language  string
	Position  int
	CreatedAt time.Time
}

// Example is a usage sentence with an optional translation.
type Example struct {
	ID          uuid.UUID
	WordID      uuid.UUID
	Sentence    string
	Translation *string
	Position    int
	CreatedAt   time.Time
}

// WordFilter defines parameters for listing a user's words.
type WordFilter struct {
	// Search performs ILIKE '%...%' on text_normalized. nil means no filter.
	Search *string
	Limit  int
	Offset int
}

// WordFields is the fixed-shape input a word is created from. Required
// fields are plain strings; optional ones are nil when absent.
type WordFields struct {
	Word         string
	Meaning      string
	Phonetic     *string
	PartOfSpeech *string
	Level        *string
	ExampleEn    *string
	ExampleCn    *string
	// MoreExamples follow the primary example, in input order.
	MoreExamples []ExampleText
}

// ExampleText is one example sentence with an optional translation.
type ExampleText struct {
	Sentence    string
	Translation *string
}

// Validate checks every rule and returns one FieldError per violation,
// in field order. An empty result means the fields are valid.
func (f WordFields) Validate() []FieldError {
	var errs []FieldError

	if f.Word == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	} else if utf8.RuneCountInString(f.Word) > MaxWordLen {
		errs = append(errs, FieldError{Field: "word", Message: tooLong(MaxWordLen)})
	}

	if f.Meaning == "" {
		errs = append(errs, FieldError{Field: "meaning", Message: "required"})
	} else if utf8.RuneCountInString(f.Meaning) > MaxMeaningLen {
		errs = append(errs, FieldError{Field: "meaning", Message: tooLong(MaxMeaningLen)})
	}

	optional := []struct {
		field string
		value *string
		max   int
	}{
		{"phonetic", f.Phonetic, MaxAttrLen},
		{"partOfSpeech", f.PartOfSpeech, MaxAttrLen},
		{"level", f.Level, MaxAttrLen},
		{"example", f.ExampleEn, MaxExampleLen},
		{"exampleCn", f.ExampleCn, MaxExampleLen},
	}
	for _, o := range optional {
		if o.value != nil && utf8.RuneCountInString(*o.value) > o.max {
			errs = append(errs, FieldError{Field: o.field, Message: tooLong(o.max)})
		}
	}

	for i, ex := range f.MoreExamples {
		field := "example" + strconv.Itoa(i+2)
		if utf8.RuneCountInString(ex.Sentence) > MaxExampleLen {
			errs = append(errs, FieldError{Field: field, Message: tooLong(MaxExampleLen)})
		}
		if ex.Translation != nil && utf8.RuneCountInString(*ex.Translation) > MaxExampleLen {
			errs = append(errs, FieldError{Field: field + "Cn", Message: tooLong(MaxExampleLen)})
		}
	}

	return errs
}

// ToWord builds a Word with one Definition and one Example per sentence:
// ExampleEn first when set, then MoreExamples. All IDs are generated client-side so the rows can be written in
// a single pipelined batch.
func (f WordFields) ToWord(userID *uuid.UUID, sourceSlug string, now time.Time) Word {
	wordID := uuid.New()
	w := Word{
		ID:             wordID,
		UserID:         userID,
		Text:           f.Word,
		TextNormalized: NormalizeText(f.Word),
		Phonetic:       f.Phonetic,
		PartOfSpeech:   f.PartOfSpeech,
		Level:          f.Level,
		SourceSlug:     sourceSlug,
		CreatedAt:      now,
		UpdatedAt:      now,
		Definitions: []Definition{{
			ID:        uuid.New(),
			WordID:    wordID,
			Text:      f.Meaning,
			Language:  DefinitionLanguageZH,
			CreatedAt: now,
		}},
	}

	sentences := f.MoreExamples
	if f.ExampleEn != nil {
		sentences = append([]ExampleText{{Sentence: *f.ExampleEn, Translation: f.ExampleCn}}, sentences...)
	}
	for i, ex := range sentences {
		w.Examples = append(w.Examples, Example{
			ID:          uuid.New(),
			WordID:      wordID,
			Sentence:    ex.Sentence,
			Translation: ex.Translation,
			Position:    i,
			CreatedAt:   now,
		})
	}

	return w
}

func tooLong(max int) string {
	return "too long (max " + strconv.Itoa(max) + ")"
}
