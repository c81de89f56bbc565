package app

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
)

// RunImport imports the file at path into userID's word book and returns
// the run summary. The format is taken from the file extension.
func RunImport(ctx context.Context, userID uuid.UUID, path string) (*vocabimport.ImportSummary, error) {
	d, err := bootstrap(ctx, "import-cli")
	if err != nil {
		return nil, err
	}
	defer d.close()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return d.imports.ImportForUser(ctx, userID, vocabimport.Upload{
		Data:     data,
		MimeType: mime.TypeByExtension(filepath.Ext(path)),
		Filename: filepath.Base(path),
	})
}
