// Package queue runs vocabulary imports as background jobs on asynq.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
)

// TypeVocabImport is the asynq task type for a bulk vocabulary import.
const TypeVocabImport = "vocab:import"

// ImportPayload is the serialized task body. The uploaded file travels
// inside the task so the worker needs no shared storage.
type ImportPayload struct {
	UserID   uuid.UUID `json:"user_id"`
	Filename string    `json:"filename"`
	MimeType string    `json:"mime_type"`
	Data     []byte    `json:"data"`
}

// Upload converts the payload back into a pipeline input.
func (p ImportPayload) Upload() vocabimport.Upload {
	return vocabimport.Upload{Data: p.Data, MimeType: p.MimeType, Filename: p.Filename}
}

// NewImportTask builds a vocab:import task for userID.
func NewImportTask(userID uuid.UUID, upload vocabimport.Upload, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(ImportPayload{
		UserID:   userID,
		Filename: upload.Filename,
		MimeType: upload.MimeType,
		Data:     upload.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal import payload: %w", err)
	}
	return asynq.NewTask(TypeVocabImport, payload, opts...), nil
}

func decodePayload(data []byte) (ImportPayload, error) {
	var p ImportPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return ImportPayload{}, fmt.Errorf("unmarshal import payload: %w", err)
	}
	return p, nil
}
