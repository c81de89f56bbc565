package vocabimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(texts ...string) []CanonicalRow {
	rows := make([]CanonicalRow, len(texts))
	for i, w := range texts {
		rows[i] = CanonicalRow{Word: w, Meaning: "m-" + w}
	}
	return rows
}

func TestDedupe_AgainstExisting(t *testing.T) {
	t.Parallel()

	res := Dedupe(words("Apple", "pear"), []string{"apple"})

	assert.Equal(t, 1, res.DuplicateCount)
	require.Len(t, res.ToInsert, 1)
	assert.Equal(t, "pear", res.ToInsert[0].Word)
}

func TestDedupe_WithinBatchFirstWins(t *testing.T) {
	t.Parallel()

	rows := []CanonicalRow{
		{Word: "Apple", Meaning: "first"},
		{Word: "apple", Meaning: "second"},
		{Word: " APPLE ", Meaning: "third"},
	}
	res := Dedupe(rows, nil)

	assert.Equal(t, 2, res.DuplicateCount)
	require.Len(t, res.ToInsert, 1)
	assert.Equal(t, "first", res.ToInsert[0].Meaning)
}

func TestDedupe_ExistingStoredWithDifferentCase(t *testing.T) {
	t.Parallel()

	res := Dedupe(words("hello"), []string{"HeLLo"})

	assert.Equal(t, 1, res.DuplicateCount)
	assert.Empty(t, res.ToInsert)
}

func TestDedupe_AllDuplicates(t *testing.T) {
	t.Parallel()

	res := Dedupe(words("a", "b"), []string{"a", "b"})

	assert.Equal(t, 2, res.DuplicateCount)
	assert.NotNil(t, res.ToInsert)
	assert.Empty(t, res.ToInsert)
}

func TestDedupe_KeepsOrder(t *testing.T) {
	t.Parallel()

	res := Dedupe(words("c", "a", "b", "a"), nil)

	got := make([]string, len(res.ToInsert))
	for i, r := range res.ToInsert {
		got[i] = r.Word
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestDedupe_KeyCollapsesInnerWhitespace(t *testing.T) {
	t.Parallel()

	res := Dedupe(words("ice cream", "ice  cream", "Ice　Cream"), nil)

	assert.Equal(t, 2, res.DuplicateCount)
	require.Len(t, res.ToInsert, 1)
	assert.Equal(t, "ice cream", res.ToInsert[0].Word)
}
