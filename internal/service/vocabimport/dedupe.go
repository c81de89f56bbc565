package vocabimport

import "github.com/dailyspark/vocab-backend/internal/domain"

// DedupeResult holds the rows left to insert and how many were dropped.
type DedupeResult struct {
	ToInsert       []CanonicalRow
	DuplicateCount int
}

// Dedupe drops rows whose normalized word is already owned (existing) or
// appeared earlier in rows. The first occurrence wins; order is kept.
func Dedupe(rows []CanonicalRow, existing []string) DedupeResult {
	seen := make(map[string]struct{}, len(existing)+len(rows))
	for _, w := range existing {
		seen[domain.NormalizeText(w)] = struct{}{}
	}

	res := DedupeResult{ToInsert: make([]CanonicalRow, 0, len(rows))}
	for _, row := range rows {
		key := domain.NormalizeText(row.Word)
		if _, dup := seen[key]; dup {
			res.DuplicateCount++
			continue
		}
		seen[key] = struct{}{}
		res.ToInsert = append(res.ToInsert, row)
	}
	return res
}
