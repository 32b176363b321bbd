package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// InitDuckDB opens the database at path, creating its directory if needed,
// and brings the schema up to date.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const upsertMenuItem = `INSERT OR REPLACE INTO menu_items (id, title, description, price, image, category)
	VALUES (?, ?, ?, ?, ?, ?)`

// InsertMenuItem stores one item. An existing row with the same id is replaced.
func (r *Repository) InsertMenuItem(item *MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item cannot be nil")
	}
	_, err := r.db.Exec(upsertMenuItem,
		item.ID, item.Title, item.Description, item.Price, item.Image, item.Category)
	return err
}

// SaveMenu stores items in a single transaction: either every item is
// written or none is. When ids repeat, the last item wins.
func (r *Repository) SaveMenu(ctx context.Context, items []*MenuItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertMenuItem)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range dedupe(items) {
		if _, err := stmt.ExecContext(ctx,
			item.ID, item.Title, item.Description, item.Price, item.Image, item.Category); err != nil {
			return fmt.Errorf("failed to insert menu item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit menu: %w", err)
	}
	return nil
}

// dedupe keeps the last item for each id, in first-seen order.
func dedupe(items []*MenuItem) []*MenuItem {
	index := make(map[int]int, len(items))
	out := make([]*MenuItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if i, ok := index[item.ID]; ok {
			out[i] = item
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

func (r *Repository) ListMenuItems() ([]*MenuItem, error) {
	rows, err := r.db.Query(`SELECT id, title, description, price, image, category
		FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		item := &MenuItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Price, &item.Image, &item.Category); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) CountMenuItems() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM menu_items`).Scan(&n)
	return n, err
}
