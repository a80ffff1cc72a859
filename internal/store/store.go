package store

import (
	"context"
	"fmt"
	"time"

	"retention-analytics/internal/models"
	"retention-analytics/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store is a read-only client for the order ledger database
type Store struct {
	db *sqlx.DB
}

// NewStore connects to the ledger database
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// LoadSnapshot reads a full copy of the ledger tables. Queries are
// ordered by primary key so the same data always loads as the same
// snapshot, which keeps the snapshot hash stable.
func (s *Store) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	ctx, span := util.StartSpan(ctx, "Store.LoadSnapshot")
	defer span.End()

	start := time.Now()
	defer func() {
		util.SnapshotLoadLatency.Observe(time.Since(start).Seconds())
	}()

	snap := &models.Snapshot{}

	if err := s.db.SelectContext(ctx, &snap.Orders,
		"SELECT order_id, customer_id, order_status, order_purchase_timestamp FROM orders ORDER BY order_id"); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Customers,
		"SELECT customer_id, customer_unique_id FROM customers ORDER BY customer_id"); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Payments,
		"SELECT order_id, payment_value FROM payments ORDER BY order_id, payment_value"); err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Items,
		"SELECT order_id, product_id, price FROM order_items ORDER BY order_id, product_id, price"); err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Products,
		"SELECT product_id, COALESCE(product_category_name, '') AS product_category_name FROM products ORDER BY product_id"); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Translations,
		"SELECT product_category_name, product_category_name_english FROM category_translation ORDER BY product_category_name"); err != nil {
		// The translation table is optional; raw names are used as-is
		// when it is absent.
		util.GetLogger().Warn("category_translation unavailable, using raw category names")
		snap.Translations = nil
	}

	util.SnapshotRowsLoaded.WithLabelValues("orders").Set(float64(len(snap.Orders)))
	util.SnapshotRowsLoaded.WithLabelValues("customers").Set(float64(len(snap.Customers)))
	util.SnapshotRowsLoaded.WithLabelValues("payments").Set(float64(len(snap.Payments)))
	util.SnapshotRowsLoaded.WithLabelValues("order_items").Set(float64(len(snap.Items)))
	util.SnapshotRowsLoaded.WithLabelValues("products").Set(float64(len(snap.Products)))

	return snap, nil
}
