package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/value-logger/src/models"
)

type fakeStore struct {
	rows          [][]string
	readErr       error
	insertErr     error
	overwriteErr  error
	inserted      [][]string
	insertedAt    []int
	overwrites    [][][]interface{}
	overwriteDone int
}

func (f *fakeStore) ReadAll(ctx context.Context) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}

	return f.rows, nil
}

func (f *fakeStore) InsertRowAt(ctx context.Context, values []string, position int) error {
	if f.insertErr != nil {
		return f.insertErr
	}

	f.inserted = append(f.inserted, values)
	f.insertedAt = append(f.insertedAt, position)
	return nil
}

func (f *fakeStore) ClearAndOverwrite(ctx context.Context, values [][]interface{}) error {
	if f.overwriteErr != nil {
		return f.overwriteErr
	}

	f.overwrites = append(f.overwrites, values)
	f.overwriteDone++
	return nil
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()

	return func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	}
}

func TestSessionLoad(t *testing.T) {
	schema := models.DefaultSchema()
	ctx := context.Background()

	t.Run("loads remote rows", func(t *testing.T) {
		store := &fakeStore{rows: [][]string{
			{"2024-01-01 10:00", "weight", "body", "70", "kg", ""},
		}}
		sess := New(schema, store)
		sess.Load(ctx)

		rows := sess.Snapshot()
		require.Len(t, rows, 1)
		assert.Equal(t, "weight", rows[0].Cell(schema, models.CategoryColumn))
	})

	t.Run("read failure falls back to empty table", func(t *testing.T) {
		store := &fakeStore{readErr: errors.New("quota exceeded")}
		sess := New(schema, store)
		sess.Load(ctx)

		assert.Empty(t, sess.Snapshot())
	})

	t.Run("nil store starts empty without panicking", func(t *testing.T) {
		sess := New(schema, nil)
		sess.Load(ctx)

		assert.Empty(t, sess.Snapshot())
	})
}

func TestSessionSubmit(t *testing.T) {
	schema := models.DefaultSchema()
	ctx := context.Background()

	t.Run("inserts at front with generated timestamp and remote row 2", func(t *testing.T) {
		store := &fakeStore{}
		sess := New(schema, store)
		sess.SetClock(fixedClock(t))

		_, err := sess.Submit(ctx, "old", "x", "1", "", "")
		require.NoError(t, err)

		rec, err := sess.Submit(ctx, "weight", "body", "70", "kg", "")
		require.NoError(t, err)
		assert.Equal(t, "2024-05-01 12:30", rec.Cell(schema, models.TimestampColumn))

		rows := sess.Snapshot()
		require.Len(t, rows, 2)
		assert.Equal(t, "weight", rows[0].Cell(schema, models.CategoryColumn))

		require.Len(t, store.insertedAt, 2)
		assert.Equal(t, 2, store.insertedAt[1])
	})

	t.Run("remote failure keeps the local record", func(t *testing.T) {
		store := &fakeStore{insertErr: errors.New("network down")}
		sess := New(schema, store)
		sess.SetClock(fixedClock(t))

		_, err := sess.Submit(ctx, "weight", "body", "70", "kg", "")
		require.Error(t, err)
		assert.Len(t, sess.Snapshot(), 1)
		// the last-synced snapshot does not pick up the unconfirmed write
		assert.Empty(t, sess.LastSynced())
	})

	t.Run("successful submit advances the last-synced snapshot", func(t *testing.T) {
		sess := New(schema, &fakeStore{})
		sess.SetClock(fixedClock(t))

		_, err := sess.Submit(ctx, "weight", "body", "70", "kg", "")
		require.NoError(t, err)
		assert.Equal(t, sess.Snapshot(), sess.LastSynced())
	})

	t.Run("nil store reports unavailable but records locally", func(t *testing.T) {
		sess := New(schema, nil)
		sess.SetClock(fixedClock(t))

		_, err := sess.Submit(ctx, "weight", "body", "70", "kg", "")
		assert.ErrorIs(t, err, ErrRemoteUnavailable)
		assert.Len(t, sess.Snapshot(), 1)
	})
}

func TestSessionSortAndEdit(t *testing.T) {
	schema := models.DefaultSchema()
	ctx := context.Background()

	seed := func(t *testing.T, store *fakeStore) *Session {
		t.Helper()

		store.rows = [][]string{
			{"2024-01-01 10:00", "A", "x", "5", "kg", ""},
			{"2024-01-02 09:00", "B", "y", "3", "kg", ""},
		}
		sess := New(schema, store)
		sess.Load(ctx)
		return sess
	}

	t.Run("display follows applied sort", func(t *testing.T) {
		sess := seed(t, &fakeStore{})
		sess.ApplySort(models.SortSpec{PrimaryKey: models.ValueColumn, PrimaryAscending: true, PersistDisplayOrderOnSave: true})

		display := sess.Display()
		require.Len(t, display, 2)
		assert.Equal(t, "B", display[0].Cells.Cell(schema, models.CategoryColumn))
		assert.Equal(t, "A", display[1].Cells.Cell(schema, models.CategoryColumn))
	})

	t.Run("clear sort restores table order", func(t *testing.T) {
		sess := seed(t, &fakeStore{})
		sess.ApplySort(models.SortSpec{PrimaryKey: models.ValueColumn, PrimaryAscending: true})
		sess.ClearSort()

		display := sess.Display()
		assert.Equal(t, "A", display[0].Cells.Cell(schema, models.CategoryColumn))
	})

	t.Run("save edits overwrites remote with header and rows", func(t *testing.T) {
		store := &fakeStore{}
		sess := seed(t, store)
		display := sess.Display()

		edited := []models.EditedRow{
			{Ref: 0, Cells: display[0].Cells.Clone()},
			{Ref: 1, Cells: display[1].Cells.Clone()},
		}
		edited[0].Cells[schema.Index(models.NoteColumn)] = "updated"

		require.NoError(t, sess.SaveEdits(ctx, edited))

		require.Equal(t, 1, store.overwriteDone)
		values := store.overwrites[0]
		require.Len(t, values, 3) // header + 2 rows
		assert.Equal(t, models.TimestampColumn, values[0][0])

		rows := sess.Snapshot()
		assert.Equal(t, "updated", rows[0].Cell(schema, models.NoteColumn))
	})

	t.Run("remote overwrite failure keeps local edits", func(t *testing.T) {
		store := &fakeStore{}
		sess := seed(t, store)
		store.overwriteErr = errors.New("auth expired")

		display := sess.Display()
		edited := []models.EditedRow{{Ref: 0, Cells: display[0].Cells.Clone()}}

		err := sess.SaveEdits(ctx, edited)
		require.Error(t, err)
		assert.Len(t, sess.Snapshot(), 1)
	})

	t.Run("save without prior display reconciles against current order", func(t *testing.T) {
		sess := seed(t, &fakeStore{})

		// default sort is timestamp descending, so displayed row 1 is the A record
		edited := []models.EditedRow{{Ref: 1, Cells: []string{"", "A", "x", "5", "kg", "kept"}}}
		require.NoError(t, sess.SaveEdits(ctx, edited))

		rows := sess.Snapshot()
		require.Len(t, rows, 1)
		assert.Equal(t, "2024-01-01 10:00", rows[0].Cell(schema, models.TimestampColumn))
		assert.Equal(t, "kept", rows[0].Cell(schema, models.NoteColumn))
	})
}

func TestSessionSummarize(t *testing.T) {
	schema := models.DefaultSchema()
	ctx := context.Background()

	store := &fakeStore{rows: [][]string{
		{"2024-01-01 10:00", "weight", "body", "70", "kg", ""},
		{"2024-01-02 10:00", "weight", "body", "72", "kg", ""},
	}}
	sess := New(schema, store)
	sess.Load(ctx)

	summaries := sess.Summarize()
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].Count)
	assert.InDelta(t, 71.0, summaries[0].Mean, 1e-9)
}
