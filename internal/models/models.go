package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer maps an order-level customer id to the stable person identity.
// One customer_unique_id may appear under many customer_ids.
type Customer struct {
	CustomerID       string `db:"customer_id" json:"customer_id"`
	CustomerUniqueID string `db:"customer_unique_id" json:"customer_unique_id"`
}

// Order is a row of the order ledger
type Order struct {
	OrderID           string    `db:"order_id" json:"order_id"`
	CustomerID        string    `db:"customer_id" json:"customer_id"`
	OrderStatus       string    `db:"order_status" json:"order_status"`
	PurchaseTimestamp time.Time `db:"order_purchase_timestamp" json:"order_purchase_timestamp"`
}

// Payment is a single payment row; an order may have several
type Payment struct {
	OrderID      string          `db:"order_id" json:"order_id"`
	PaymentValue decimal.Decimal `db:"payment_value" json:"payment_value"`
}

// OrderItem is a single line item of an order
type OrderItem struct {
	OrderID   string          `db:"order_id" json:"order_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

// Product carries the raw (possibly non-English) category name
type Product struct {
	ProductID    string `db:"product_id" json:"product_id"`
	CategoryName string `db:"product_category_name" json:"product_category_name"`
}

// CategoryTranslation maps a raw category name to its English name.
// The mapping is optional; a missing entry is not an error.
type CategoryTranslation struct {
	CategoryName        string `db:"product_category_name" json:"product_category_name"`
	CategoryNameEnglish string `db:"product_category_name_english" json:"product_category_name_english"`
}

// Snapshot is an immutable copy of the ledger tables taken once per
// computation run. The analytics core never mutates it.
type Snapshot struct {
	Orders       []Order               `json:"orders"`
	Customers    []Customer            `json:"customers"`
	Payments     []Payment             `json:"payments"`
	Items        []OrderItem           `json:"order_items"`
	Products     []Product             `json:"products"`
	Translations []CategoryTranslation `json:"category_translation,omitempty"`
}

// DefaultDeliveredStatus is the order_status value in scope for all
// aggregations unless overridden by configuration.
const DefaultDeliveredStatus = "delivered"
