package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T, path string) *Journal {
	t.Helper()
	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func record(t *testing.T, j *Journal, path string, ops ...Op) {
	t.Helper()
	for _, op := range ops {
		require.NoError(t, j.Record(context.Background(), path, op))
	}
}

func TestOpen_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")
	j := openTestJournal(t, dbPath)

	var version int
	require.NoError(t, j.db.QueryRow(`PRAGMA user_version`).Scan(&version))
	require.Equal(t, len(migrations), version)

	var name string
	require.NoError(t, j.db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='ops'`,
	).Scan(&name))
	require.Equal(t, "ops", name)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(dbPath)
	require.NoError(t, err)
	record(t, j1, "/doc.txt", Op{Kind: OpAppend, Text: "hi"})
	require.NoError(t, j1.Close())

	j2 := openTestJournal(t, dbPath)
	got, err := j2.Pending(context.Background(), "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "hi", got)
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(dbPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "newer than supported")
}

func TestOpen_SessionsAreUnique(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	j1 := openTestJournal(t, dbPath)
	j2 := openTestJournal(t, dbPath)
	require.NotEqual(t, j1.Session(), j2.Session())
	require.Len(t, j1.Session(), 36)
}

func TestJournal_OwnSessionIsNotPending(t *testing.T) {
	j := openTestJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	record(t, j, "/doc.txt", Op{Kind: OpAppend, Text: "abc"})

	got, err := j.Pending(context.Background(), "/doc.txt")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestJournal_RecoverAfterCrash(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	crashed, err := Open(dbPath)
	require.NoError(t, err)
	record(t, crashed, "/doc.txt",
		Op{Kind: OpAppend, Text: "a"},
		Op{Kind: OpAppend, Text: "b"},
		Op{Kind: OpRemove, Count: 1},
		Op{Kind: OpAppend, Text: "\n"},
	)
	record(t, crashed, "/other.txt", Op{Kind: OpAppend, Text: "zzz"})
	require.NoError(t, crashed.Close())

	next := openTestJournal(t, dbPath)
	got, err := next.Pending(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "a\n", got)

	adopted, err := next.Adopt(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "a\n", adopted)
	got, err = next.Pending(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Empty(t, got, "adopted ops belong to the current session")

	require.NoError(t, next.Clear(ctx, "/doc.txt"))

	later := openTestJournal(t, dbPath)
	got, err = later.Pending(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Empty(t, got, "save cleared the adopted ops")

	got, err = later.Pending(ctx, "/other.txt")
	require.NoError(t, err)
	require.Equal(t, "zzz", got, "other documents are untouched")
}

func TestJournal_ClearOnlyAffectsCurrentSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	old := openTestJournal(t, dbPath)
	record(t, old, "/doc.txt", Op{Kind: OpAppend, Text: "old"})

	cur := openTestJournal(t, dbPath)
	record(t, cur, "/doc.txt", Op{Kind: OpAppend, Text: "new"})
	require.NoError(t, cur.Clear(ctx, "/doc.txt"))

	got, err := cur.Pending(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "old", got)
}

func TestJournal_Discard(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	old := openTestJournal(t, dbPath)
	record(t, old, "/doc.txt", Op{Kind: OpAppend, Text: "old"})

	cur := openTestJournal(t, dbPath)
	require.NoError(t, cur.Discard(ctx, "/doc.txt"))

	got, err := cur.Pending(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestJournal_ClosedReturnsErrClosed(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close(), "second close is harmless")

	ctx := context.Background()
	require.ErrorIs(t, j.Record(ctx, "/doc.txt", Op{Kind: OpAppend, Text: "x"}), ErrClosed)
	require.ErrorIs(t, j.Clear(ctx, "/doc.txt"), ErrClosed)
	_, err = j.Adopt(ctx, "/doc.txt")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, j.Discard(ctx, "/doc.txt"), ErrClosed)
	_, err = j.Pending(ctx, "/doc.txt")
	require.ErrorIs(t, err, ErrClosed)
}

func TestJournal_RejectsUnknownKind(t *testing.T) {
	j := openTestJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	err := j.Record(context.Background(), "/doc.txt", Op{Kind: "rewrite"})
	require.Error(t, err)
}

func TestJournal_AdoptedTextFollowsOwnEdits(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	first, err := Open(dbPath)
	require.NoError(t, err)
	record(t, first, "/doc.txt", Op{Kind: OpAppend, Text: "x"}, Op{Kind: OpAppend, Text: "y"})
	require.NoError(t, first.Close())

	second, err := Open(dbPath)
	require.NoError(t, err)
	record(t, second, "/doc.txt", Op{Kind: OpAppend, Text: "ab"})
	adopted, err := second.Adopt(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "xy", adopted)
	record(t, second, "/doc.txt", Op{Kind: OpRemove, Count: 1})
	require.NoError(t, second.Close())

	third := openTestJournal(t, dbPath)
	got, err := third.Pending(ctx, "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "abx", got, "replay matches the order edits reached the buffer")
}

func TestJournal_AdoptWithNothingPending(t *testing.T) {
	j := openTestJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	record(t, j, "/doc.txt", Op{Kind: OpAppend, Text: "mine"})

	adopted, err := j.Adopt(context.Background(), "/doc.txt")
	require.NoError(t, err)
	require.Empty(t, adopted)

	var n int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM ops WHERE path = ?`, "/doc.txt").Scan(&n))
	require.Equal(t, 1, n)
}
