// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/allotdesk/models"
)

func TestDedup_LastRowWins(t *testing.T) {
	merged := Dedup([]models.Registration{
		{Email: "a@x.com", FullName: "First"},
		{Email: "b@x.com", FullName: "Other"},
		{Email: "a@x.com", FullName: "Second"},
	})

	require.Len(t, merged.ByEmail, 2)
	assert.Equal(t, "Second", merged.ByEmail["a@x.com"].FullName)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, merged.Keys)

	records := merged.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Second", records[0].FullName)
	assert.Equal(t, "Other", records[1].FullName)
}

func TestDedup_CaseAndWhitespaceInsensitive(t *testing.T) {
	merged := Dedup([]models.Registration{
		{Email: "A@B.com ", FullName: "Upper"},
		{Email: "a@b.com", FullName: "Lower"},
	})

	require.Len(t, merged.ByEmail, 1)
	assert.Equal(t, "Lower", merged.ByEmail["a@b.com"].FullName)
}

func TestDedup_NoFieldMerge(t *testing.T) {
	merged := Dedup([]models.Registration{
		{Email: "a@x.com", FullName: "Alice", College: "IIT"},
		{Email: "a@x.com", FullName: "Alice"},
	})

	assert.Equal(t, "", merged.ByEmail["a@x.com"].College)
}

func TestDedup_SkipsBlankEmail(t *testing.T) {
	merged := Dedup([]models.Registration{{Email: "  "}, {Email: ""}})
	assert.Empty(t, merged.ByEmail)
	assert.Empty(t, merged.Records())
}

func TestBuildBatch(t *testing.T) {
	rows := [][]string{
		{"t1", "Alice Old", "", "alice@x.com"},
		{"t2", "No Email", "", ""},
		{"t3", "Bob", "", "bob@x.com"},
		{"t4", "Alice New", "", "ALICE@x.com "},
	}

	batch := BuildBatch(rows, priorityLayout(t))

	require.Len(t, batch.Records, 2)
	assert.Equal(t, "Alice New", batch.Records[0].FullName)
	assert.Equal(t, "PR-ALICE-4", batch.Records[0].RegID)
	assert.Equal(t, "alice@x.com", batch.Records[0].Email)
	assert.Equal(t, "Bob", batch.Records[1].FullName)
	assert.Equal(t, 1, batch.Rejected)
	assert.Equal(t, 1, batch.Duplicates)
	assert.Equal(t, 2, batch.Skipped())
}
