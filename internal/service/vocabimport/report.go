package vocabimport

// Summarize builds the run summary. FailedCount is len(failures); the list
// itself is truncated to maxFailures entries.
func Summarize(total, imported, duplicates int, failures []Failure, maxFailures int) ImportSummary {
	shown := failures
	if maxFailures >= 0 && len(shown) > maxFailures {
		shown = shown[:maxFailures]
	}

	list := make([]Failure, len(shown))
	copy(list, shown)

	return ImportSummary{
		TotalRows:      total,
		ImportedCount:  imported,
		DuplicateCount: duplicates,
		FailedCount:    len(failures),
		Failures:       list,
	}
}
