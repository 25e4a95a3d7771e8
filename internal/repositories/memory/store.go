// Package memory is the prototype storage driver: go-memdb tables persisted
// as a single JSON snapshot blob.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/hashicorp/go-memdb"
)

// Store owns the in-memory database and its optional snapshot file.
type Store struct {
	db           *memdb.MemDB
	snapshotPath string
	persistMu    sync.Mutex
}

// NewStore creates an empty store. When snapshotPath is set the store loads
// it if it exists and rewrites it after every committed write.
func NewStore(snapshotPath string) (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create memdb: %w", err)
	}
	s := &Store{db: db, snapshotPath: snapshotPath}
	if snapshotPath != "" {
		if _, err := s.loadSnapshot(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// IsEmpty reports whether the store holds no users and no projects.
func (s *Store) IsEmpty() bool {
	txn := s.db.Txn(false)
	defer txn.Abort()
	for _, t := range []string{tableUsers, tableProjects} {
		if raw, err := txn.First(t, indexID); err == nil && raw != nil {
			return false
		}
	}
	return true
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: store.repositories(nil),
		TxManager:    &txManager{store: store},
	}
}

func (s *Store) repositories(txn *memdb.Txn) portsrepo.Repositories {
	sess := session{store: s, txn: txn}
	return portsrepo.Repositories{
		ProjectRepo:       &ProjectRepository{sess},
		ProjectDetailRepo: &ProjectDetailRepository{sess},
		InventoryRepo:     &InventoryRepository{sess},
		ClientRepo:        &ClientRepository{sess},
		EnquiryRepo:       &EnquiryRepository{sess},
		BookingRepo:       &BookingRepository{sess},
		FollowUpRepo:      &FollowUpRepository{sess},
		NotificationRepo:  &NotificationRepository{sess},
		ActivityRepo:      &ActivityRepository{sess},
		UserRepo:          &UserRepository{sess},
		ReportingRepo:     &ReportingRepository{sess},
	}
}

// session binds repositories either to an open write transaction or to the
// store itself, in which case every call runs in its own transaction.
type session struct {
	store *Store
	txn   *memdb.Txn
}

func (s session) read(fn func(txn *memdb.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	txn := s.store.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

func (s session) write(ctx context.Context, fn func(txn *memdb.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	txn := s.store.db.Txn(true)
	if err := fn(txn); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()
	s.store.persist(ctx)
	return nil
}

// txManager implements portsrepo.TransactionManager with a memdb write
// transaction. memdb allows a single writer, so transactions are serialized.
type txManager struct {
	store *Store
}

var _ portsrepo.TransactionManager = (*txManager)(nil)

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Repositories) error) (err error) {
	txn := m.store.db.Txn(true)
	committed := false
	defer func() {
		if !committed {
			txn.Abort()
		}
	}()

	if err = fn(ctx, m.store.repositories(txn)); err != nil {
		return err
	}
	txn.Commit()
	committed = true
	m.store.persist(ctx)
	return nil
}

// persist writes the snapshot. The in-memory commit has already happened, so
// a failure is logged rather than returned.
func (s *Store) persist(ctx context.Context) {
	if s.snapshotPath == "" {
		return
	}
	if err := s.writeSnapshot(); err != nil {
		slog.ErrorContext(ctx, "Failed to write memory snapshot",
			slog.String("path", s.snapshotPath), slog.String("error", err.Error()))
	}
}

// first returns a copy of the first row matching the index lookup.
func first[T any](txn *memdb.Txn, table, index string, args ...any) (*T, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("memdb lookup on %s.%s: %w", table, index, err)
	}
	if raw == nil {
		return nil, nil
	}
	v := *raw.(*T)
	return &v, nil
}

// all returns copies of every row matching the index lookup, filtered by keep.
func all[T any](txn *memdb.Txn, table, index string, keep func(T) bool, args ...any) ([]T, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("memdb scan on %s.%s: %w", table, index, err)
	}
	out := make([]T, 0)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		v := *raw.(*T)
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func insert[T any](txn *memdb.Txn, table string, v T) error {
	if err := txn.Insert(table, &v); err != nil {
		return fmt.Errorf("memdb insert into %s: %w", table, err)
	}
	return nil
}

// findLive looks a row up by id and hides soft-deleted rows.
func findLive[T any](txn *memdb.Txn, table, entity, id string, deleted func(T) bool) (*T, error) {
	v, err := first[T](txn, table, indexID, id)
	if err != nil {
		return nil, err
	}
	if v == nil || deleted(*v) {
		return nil, apperrors.NotFoundf("%s %s not found", entity, id)
	}
	return v, nil
}

// replaceLive overwrites an existing live row, failing with ErrNotFound otherwise.
func replaceLive[T any](txn *memdb.Txn, table, entity, id string, deleted func(T) bool, v T) error {
	if _, err := findLive(txn, table, entity, id, deleted); err != nil {
		return err
	}
	return insert(txn, table, v)
}

// softDelete loads a live row, lets mark flag it deleted and stores it back.
func softDelete[T any](txn *memdb.Txn, table, entity, id string, deleted func(T) bool, mark func(*T)) error {
	v, err := findLive(txn, table, entity, id, deleted)
	if err != nil {
		return err
	}
	mark(v)
	return insert(txn, table, *v)
}

func markAudit(isDeleted *bool, touch func(string, time.Time), by string, at time.Time) {
	*isDeleted = true
	touch(by, at)
}

// Flush writes the snapshot immediately, e.g. after a seed import.
func (s *Store) Flush(ctx context.Context) {
	s.persist(ctx)
}
