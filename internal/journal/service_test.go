package journal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/equity/internal/model"
)

func contribution(d string, amount string) model.JournalEntry {
	t, _ := model.ParsePeriod(d, d)
	return model.JournalEntry{
		Date: t.Start,
		Memo: "Aporte",
		Lines: []model.EntryLine{
			{AccountID: "caja", Debit: dec(amount)},
			{AccountID: "aportes_irrevocables", Credit: dec(amount)},
		},
	}
}

func TestAppend_NewJournal(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultAccounts)

	entryID, err := svc.Append(contribution("2025-01-15", "4.00"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", entryID)

	_, err = os.Stat(Path(dir))
	require.NoError(t, err)

	lines, err := svc.ReadLines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-01-001a", lines[0].ID)
	assert.True(t, lines[0].Debit.Equal(dec("4.00")))
	assert.True(t, lines[1].Credit.Equal(dec("4.00")))
}

func TestAppend_Sequences(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultAccounts)

	_, err := svc.Append(contribution("2025-01-10", "10"))
	require.NoError(t, err)
	id, err := svc.Append(contribution("2025-01-20", "20"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", id)

	id, err = svc.Append(contribution("2025-02-01", "5"))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-001", id, "sequence restarts per month")

	entries, err := svc.Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2025-01-002", entries[1].ID)
}

func TestAppend_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultAccounts)

	e := contribution("2025-01-15", "50")
	e.Lines[1].AccountID = "nope"
	_, err := svc.Append(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	lines, err := svc.ReadLines()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestNextEntrySeq(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultAccounts)

	seq, err := svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	_, err = svc.Append(contribution("2025-01-01", "1"))
	require.NoError(t, err)

	seq, err = svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
}

func TestLoad_Missing(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts)
	entries, err := svc.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))

	_, err = NewService(dir, defaultAccounts).Append(contribution("2025-03-01", "1"))
	require.NoError(t, err)
	lines, err := NewService(dir, defaultAccounts).ReadLines()
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
