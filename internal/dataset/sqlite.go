package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"pharmakpi/internal/core"
)

// SQLiteLoader reads the dataset from a SQLite database whose schema is
// managed by the embedded migrations. Used when DATA_BACKEND=sqlite.
type SQLiteLoader struct {
	Path string
}

// NewSQLiteLoader opens the database lazily on each Load; the dataset is
// small and reloads are rare.
func NewSQLiteLoader(path string) *SQLiteLoader {
	return &SQLiteLoader{Path: path}
}

// Load runs migrations, reads the three tables and builds the snapshot.
func (l *SQLiteLoader) Load(ctx context.Context) (*Snapshot, error) {
	if err := RunMigrations(l.Path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", l.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	categories, err := l.loadCategories(ctx, db)
	if err != nil {
		return nil, err
	}
	products, err := l.loadProducts(ctx, db)
	if err != nil {
		return nil, err
	}
	sales, err := l.loadSales(ctx, db)
	if err != nil {
		return nil, err
	}

	return NewSnapshot(categories, products, sales), nil
}

func (l *SQLiteLoader) loadCategories(ctx context.Context, db *sql.DB) ([]core.Category, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (l *SQLiteLoader) loadProducts(ctx context.Context, db *sql.DB) ([]core.Product, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, brand, sku, category_id, active FROM products ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.SKU, &p.CategoryID, &p.Active); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (l *SQLiteLoader) loadSales(ctx context.Context, db *sql.DB) ([]core.SalesRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, product_id, year, month, quantity, unit_price FROM monthly_sales ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query monthly_sales: %w", err)
	}
	defer rows.Close()

	var out []core.SalesRow
	for rows.Next() {
		var r core.SalesRow
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Year, &r.Month, &r.Quantity, &r.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
