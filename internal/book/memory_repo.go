package book

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-memdb"
)

const memTable = "books"

// MemoryRepo keeps books in an in-process go-memdb table. Rows vanish with
// the process; it backs local development and tests.
type MemoryRepo struct {
	db *memdb.MemDB

	mu     sync.Mutex
	nextID int64
}

// NewMemoryRepo creates an empty in-memory book table.
func NewMemoryRepo() (*MemoryRepo, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memTable: {
				Name: memTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("init in-memory book table: %w", err)
	}
	return &MemoryRepo{db: db}, nil
}

// List returns every book ordered by ID.
func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memTable, "id")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	out := []Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*Book))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Insert stores d under the next free ID and always echoes the row.
func (r *MemoryRepo) Insert(ctx context.Context, d Draft) (*Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	b := &Book{ID: r.nextID, Draft: d}

	txn := r.db.Txn(true)
	if err := txn.Insert(memTable, b); err != nil {
		txn.Abort()
		r.nextID--
		return nil, fmt.Errorf("insert book: %w", err)
	}
	txn.Commit()

	stored := *b
	return &stored, nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
