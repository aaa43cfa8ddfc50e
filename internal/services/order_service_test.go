package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

func newTestOrderService() (*OrderServiceImpl, *mockOrderRepo) {
	orders := &mockOrderRepo{}
	customers := &mockCustomerRepo{customers: map[string]*models.Customer{
		"cust-1": {ID: "cust-1", FirstName: "Ayşe", LastName: "Yılmaz", Phone: "0555 111 22 33"},
	}}
	return NewOrderService(orders, customers, nil), orders
}

func quoteResult() *models.CalculationResult {
	return &models.CalculationResult{
		WeightGrams:      decimal.RequireFromString("23"),
		TotalPrice:       decimal.RequireFromString("47265.00"),
		SellPricePerGram: decimal.RequireFromString("3000"),
		Formula:          "((45 - 2) * 0.5) + 1.5",
	}
}

func TestCreateFromQuote(t *testing.T) {
	svc, _ := newTestOrderService()
	order, err := svc.CreateFromQuote(context.Background(), &CreateOrderInput{
		CustomerID:  "cust-1",
		ModelName:   "Singapur",
		ProductType: models.ProductTypeNecklaceBracelet,
		Purity:      14,
		Result:      quoteResult(),
		Discount:    decimal.RequireFromString("265.00"),
	})
	if err != nil {
		t.Fatalf("CreateFromQuote failed: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.OrderNumber != "ORD-000001" {
		t.Errorf("order number = %s, want ORD-000001", order.OrderNumber)
	}
	if !order.Subtotal.Equal(decimal.RequireFromString("47265.00")) {
		t.Errorf("subtotal = %s, want quote total", order.Subtotal)
	}
	if !order.Total.Equal(decimal.RequireFromString("47000.00")) {
		t.Errorf("total = %s, want 47000.00 after discount", order.Total)
	}
	if order.CustomerName != "Ayşe Yılmaz" {
		t.Errorf("customer name = %s, want Ayşe Yılmaz", order.CustomerName)
	}
}

func TestCreateFromQuote_DiscountClampedToZero(t *testing.T) {
	svc, _ := newTestOrderService()
	order, err := svc.CreateFromQuote(context.Background(), &CreateOrderInput{
		CustomerID:  "cust-1",
		ModelName:   "Singapur",
		ProductType: models.ProductTypeNecklaceBracelet,
		Purity:      14,
		Result:      quoteResult(),
		Discount:    decimal.RequireFromString("99999.00"),
	})
	if err != nil {
		t.Fatalf("CreateFromQuote failed: %v", err)
	}
	if !order.Total.IsZero() {
		t.Errorf("total = %s, want 0 when discount exceeds subtotal", order.Total)
	}
}

func TestCreateFromQuote_Rejections(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()

	_, err := svc.CreateFromQuote(ctx, &CreateOrderInput{
		CustomerID:  "cust-1",
		ModelName:   "Singapur",
		ProductType: models.ProductTypeNecklaceBracelet,
		Purity:      14,
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("missing result err = %v, want validation error", err)
	}

	_, err = svc.CreateFromQuote(ctx, &CreateOrderInput{
		CustomerID:  "cust-1",
		ModelName:   "Singapur",
		ProductType: models.ProductTypeNecklaceBracelet,
		Purity:      14,
		Result:      quoteResult(),
		Discount:    decimal.RequireFromString("-10"),
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("negative discount err = %v, want validation error", err)
	}

	_, err = svc.CreateFromQuote(ctx, &CreateOrderInput{
		CustomerID:  "no-such-customer",
		ModelName:   "Singapur",
		ProductType: models.ProductTypeNecklaceBracelet,
		Purity:      14,
		Result:      quoteResult(),
	})
	if !apperrors.IsNotFound(err) {
		t.Errorf("unknown customer err = %v, want not found", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newTestOrderService()
	ctx := context.Background()

	created, err := svc.CreateFromQuote(ctx, &CreateOrderInput{
		CustomerID:  "cust-1",
		ModelName:   "Singapur",
		ProductType: models.ProductTypeNecklaceBracelet,
		Purity:      14,
		Result:      quoteResult(),
	})
	if err != nil {
		t.Fatalf("CreateFromQuote failed: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, created.ID, models.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.OrderStatusDelivered {
		t.Errorf("status = %s, want delivered", updated.Status)
	}
	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Status != models.OrderStatusDelivered {
		t.Errorf("stored status = %s, want delivered", stored.Status)
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, "misplaced"); !apperrors.IsValidation(err) {
		t.Errorf("invalid status err = %v, want validation error", err)
	}
}

func TestCustomerService_AttachesOrderCount(t *testing.T) {
	orders := &mockOrderRepo{}
	customers := &mockCustomerRepo{customers: map[string]*models.Customer{
		"cust-1": {ID: "cust-1", FirstName: "Ayşe", LastName: "Yılmaz", Phone: "0555 111 22 33"},
	}}
	orderSvc := NewOrderService(orders, customers, nil)
	custSvc := NewCustomerService(customers, orders, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := orderSvc.CreateFromQuote(ctx, &CreateOrderInput{
			CustomerID:  "cust-1",
			ModelName:   "Singapur",
			ProductType: models.ProductTypeNecklaceBracelet,
			Purity:      14,
			Result:      quoteResult(),
		})
		if err != nil {
			t.Fatalf("order %d failed: %v", i, err)
		}
	}

	c, err := custSvc.Get(ctx, "cust-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", c.OrderCount)
	}
}
