package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/value-logger/src/models"
)

// RemoteStore is the boundary contract with the remote tabular backend.
type RemoteStore interface {
	ReadAll(ctx context.Context) ([][]string, error)
	InsertRowAt(ctx context.Context, values []string, position int) error
	ClearAndOverwrite(ctx context.Context, values [][]interface{}) error
}

// insertPosition is the 1-based sheet row directly below the header, so the
// remote store accumulates newest-first.
const insertPosition = 2

// ErrRemoteUnavailable reports that no authorized store handle exists. The
// session still works as a local scratchpad.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

// Session owns one user's working table, sort settings and last-synced
// snapshot. All mutation goes through it; the mutex only serializes
// overlapping HTTP requests, there is no multi-writer conflict handling.
type Session struct {
	mu         sync.Mutex
	schema     models.Schema
	table      *models.WorkingTable
	lastSynced *models.WorkingTable
	spec       models.SortSpec
	displayed  []models.DisplayRow
	store      RemoteStore
	now        func() time.Time
}

// New builds a session with an empty schema-shaped table. store may be nil
// when no authorized handle could be resolved.
func New(schema models.Schema, store RemoteStore) *Session {
	return &Session{
		schema:     schema,
		table:      models.NewWorkingTable(schema),
		lastSynced: models.NewWorkingTable(schema),
		spec:       models.DefaultSortSpec(),
		store:      store,
		now:        time.Now,
	}
}

// Load pulls the remote table into the working table. Any failure leaves the
// session on an empty schema-shaped table and never escapes: a dead remote at
// startup is a warning, not an error.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		log.Warn("no remote store handle; starting with an empty table")
		return
	}

	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		log.Warnf("failed to read remote table, starting empty: %v", err)
		return
	}

	s.table = models.NewWorkingTableFromRows(s.schema, rows)
	s.lastSynced = s.table.Clone()
	log.Infof("loaded %d records from remote store", s.table.Len())
}

// Schema returns the session's column list.
func (s *Session) Schema() models.Schema {
	return s.schema
}

// Submit creates a timestamped record, inserts it at the front of the
// working table and attempts the remote insert directly below the header.
// The local insert survives a remote failure; the returned error is for
// reporting only.
func (s *Session) Submit(ctx context.Context, category, item, value, unit, note string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := models.NewRecord(s.schema, category, item, value, unit, note, s.now())
	s.table.InsertFront(rec)

	if s.store == nil {
		return rec, ErrRemoteUnavailable
	}

	if err := s.store.InsertRowAt(ctx, rec, insertPosition); err != nil {
		return rec, fmt.Errorf("failed to append record to remote store: %w", err)
	}

	s.lastSynced = s.table.Clone()
	return rec, nil
}

// ApplySort replaces the sort spec wholesale.
func (s *Session) ApplySort(spec models.SortSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec = spec
}

// ClearSort resets to the working table's own order.
func (s *Session) ClearSort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec = models.ClearedSortSpec()
}

// SortSpec returns the active sort settings.
func (s *Session) SortSpec() models.SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.spec
}

// Display recomputes the display table from the working table and the active
// sort spec. The result is remembered as the reference for the next SaveEdits.
func (s *Session) Display() []models.DisplayRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.displayed = models.SortRecords(s.schema, s.table.Rows, s.spec)
	return s.displayed
}

// SaveEdits reconciles the edited rows against the last displayed table,
// replaces the working table and overwrites the remote store wholesale.
// On remote failure the local table keeps the edits and the error is
// returned for reporting.
func (s *Session) SaveEdits(ctx context.Context, edited []models.EditedRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	displayed := s.displayed
	if displayed == nil {
		displayed = models.SortRecords(s.schema, s.table.Rows, s.spec)
	}

	s.table.Replace(models.Reconcile(s.schema, displayed, edited, s.spec))
	s.displayed = nil

	if s.store == nil {
		return ErrRemoteUnavailable
	}

	if err := s.store.ClearAndOverwrite(ctx, s.table.ToRows()); err != nil {
		return fmt.Errorf("failed to save edits to remote store: %w", err)
	}

	s.lastSynced = s.table.Clone()
	return nil
}

// LastSynced returns the table contents as last confirmed written to the
// remote store. Comparison reference only; nothing is enforced against it.
func (s *Session) LastSynced() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSynced.Clone().Rows
}

// Snapshot returns a copy of the working table rows for export and summary.
func (s *Session) Snapshot() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Clone().Rows
}

// Summarize aggregates the working table's numeric values per category.
func (s *Session) Summarize() []models.CategorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Summarize(s.schema, s.table.Rows)
}

// SetClock overrides the timestamp source. Test hook.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}
