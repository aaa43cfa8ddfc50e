package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle state
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusOrdered   OrderStatus = "ordered"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOrdered, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order records a finalized quote handed to the order sink. The pricing core
// produces the numbers; this row is how the shop tracks fulfilment.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	OrderNumber string      `json:"order_number" gorm:"uniqueIndex;size:30"`
	CustomerID  string      `json:"customer_id" gorm:"index"`
	ProductType ProductType `json:"product_type" gorm:"size:30"`
	ModelName   string      `json:"model_name" gorm:"size:100"`
	Purity      Purity      `json:"purity"`

	Formula     string          `json:"formula" gorm:"size:200"`
	TotalWeight decimal.Decimal `json:"total_weight" gorm:"type:decimal(12,2)"`
	GoldPrice   decimal.Decimal `json:"gold_price" gorm:"type:decimal(20,8)"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(20,2)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:decimal(20,2)"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(20,2)"`

	Notes     *string     `json:"notes,omitempty"`
	Status    OrderStatus `json:"status" gorm:"size:20;index"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`

	CustomerName string `json:"customer_name,omitempty" gorm:"-"`
}

func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return errors.New("customer_id is required")
	}
	if !o.ProductType.Valid() {
		return errors.New("product_type is invalid")
	}
	if o.ModelName == "" {
		return errors.New("model_name is required")
	}
	if !o.Status.Valid() {
		return errors.New("status is invalid")
	}
	if o.TotalWeight.IsNegative() {
		return errors.New("total_weight must be non-negative")
	}
	if o.Discount.IsNegative() {
		return errors.New("discount must be non-negative")
	}
	if o.Total.IsNegative() {
		return errors.New("total must be non-negative")
	}
	return nil
}

// OrderStatistics is the rollup returned by the statistics endpoint
type OrderStatistics struct {
	TotalOrders       int                 `json:"total_orders"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	AverageOrderValue decimal.Decimal     `json:"average_order_value"`
	StatusBreakdown   map[OrderStatus]int `json:"status_breakdown"`
}

// OrderFilter narrows order listings
type OrderFilter struct {
	CustomerID string
	Status     OrderStatus
	Limit      int
	Offset     int
}
