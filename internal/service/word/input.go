package word

import (
	"strings"

	"github.com/dailyspark/vocab-backend/internal/domain"
)

// CreateWordInput holds the parameters for adding one word by hand.
type CreateWordInput struct {
	Word         string
	Meaning      string
	Phonetic     *string
	PartOfSpeech *string
	Level        *string
	Example      *string
	ExampleCn    *string
}

// Fields trims every value and drops blank optional ones, giving the same
// shape the import pipeline validates.
func (i CreateWordInput) Fields() domain.WordFields {
	return domain.WordFields{
		Word:         strings.TrimSpace(i.Word),
		Meaning:      strings.TrimSpace(i.Meaning),
		Phonetic:     trimOptional(i.Phonetic),
		PartOfSpeech: trimOptional(i.PartOfSpeech),
		Level:        trimOptional(i.Level),
		ExampleEn:    trimOptional(i.Example),
		ExampleCn:    trimOptional(i.ExampleCn),
	}
}

// Validate checks all fields and collects all errors.
func (i CreateWordInput) Validate() error {
	if errs := i.Fields().Validate(); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListWordsInput holds the parameters for listing words.
type ListWordsInput struct {
	Search *string
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListWordsInput) Validate() error {
	var errs []domain.FieldError

	if i.Search != nil && len(*i.Search) > domain.MaxWordLen {
		errs = append(errs, domain.FieldError{Field: "search", Message: "too long (max 100)"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
