package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/internal/service/word"
)

type wordService interface {
	ListWords(ctx context.Context, input word.ListWordsInput) ([]domain.Word, int, error)
	CreateWord(ctx context.Context, input word.CreateWordInput) (*domain.Word, error)
}

// WordHandler serves the word book endpoints.
type WordHandler struct {
	svc wordService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc wordService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "words")}
}

type createWordRequest struct {
	Word         string  `json:"word"`
	Meaning      string  `json:"meaning"`
	Phonetic     *string `json:"phonetic"`
	PartOfSpeech *string `json:"partOfSpeech"`
	Level        *string `json:"level"`
	Example      *string `json:"example"`
	ExampleCn    *string `json:"exampleCn"`
}

type wordResponse struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Meaning      string    `json:"meaning"`
	Phonetic     *string   `json:"phonetic,omitempty"`
	PartOfSpeech *string   `json:"partOfSpeech,omitempty"`
	Level        *string   `json:"level,omitempty"`
	Example      *string   `json:"example,omitempty"`
	ExampleCn    *string   `json:"exampleCn,omitempty"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
}

type listWordsResponse struct {
	Words []wordResponse `json:"words"`
	Total int            `json:"total"`
}

// List handles GET /api/words?search=&limit=&offset=.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var input word.ListWordsInput
	var fieldErrs []domain.FieldError
	if v := q.Get("search"); v != "" {
		input.Search = &v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
		input.Offset = n
	}
	if len(fieldErrs) > 0 {
		handleError(w, r, h.log, domain.NewValidationErrors(fieldErrs))
		return
	}

	words, total, err := h.svc.ListWords(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := listWordsResponse{Words: make([]wordResponse, len(words)), Total: total}
	for i := range words {
		resp.Words[i] = toWordResponse(&words[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/words.
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	created, err := h.svc.CreateWord(r.Context(), word.CreateWordInput{
		Word:         req.Word,
		Meaning:      req.Meaning,
		Phonetic:     req.Phonetic,
		PartOfSpeech: req.PartOfSpeech,
		Level:        req.Level,
		Example:      req.Example,
		ExampleCn:    req.ExampleCn,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "Word already exists")
		return
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(created))
}

func toWordResponse(w *domain.Word) wordResponse {
	resp := wordResponse{
		ID:           w.ID.String(),
		Word:         w.Text,
		Phonetic:     w.Phonetic,
		PartOfSpeech: w.PartOfSpeech,
		Level:        w.Level,
		Source:       w.SourceSlug,
		CreatedAt:    w.CreatedAt,
	}
	if len(w.Definitions) > 0 {
		resp.Meaning = w.Definitions[0].Text
	}
	if len(w.Examples) > 0 {
		resp.Example = &w.Examples[0].Sentence
		resp.ExampleCn = w.Examples[0].Translation
	}
	return resp
}
