// internal/domain/request/builder_test.go
package request_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/your-org/cafe-backend/internal/domain/request"
	"github.com/your-org/cafe-backend/internal/testutil"
)

func setupBuilderTest(t *testing.T) (*request.Builder, uint, uint) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rdb := testutil.SetupTestRedis(t)
	cfg := testutil.TestConfig()

	outlet := testutil.SeedOutlet(t, db, "Main", fmt.Sprintf("T%d", testutil.UniqueID()))
	// Reorder level 10 with the cap multiplier of 3 gives a ceiling of 30
	item := testutil.SeedInventoryItem(t, db, outlet.ID, "Coffee Beans", 5, 10)

	staffID := testutil.UniqueID()
	builder := request.NewBuilder(db, rdb, cfg)
	return builder, staffID, item.ID
}

func TestGetCartEmpty(t *testing.T) {
	builder, staffID, _ := setupBuilderTest(t)

	cart, err := builder.GetCart(context.Background(), staffID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if cart.StaffID != staffID {
		t.Errorf("Expected staff %d, got %d", staffID, cart.StaffID)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("Expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestOpenLine(t *testing.T) {
	builder, staffID, itemID := setupBuilderTest(t)
	ctx := context.Background()

	cart, err := builder.OpenLine(ctx, staffID, itemID)
	if err != nil {
		t.Fatalf("OpenLine failed: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 1 {
		t.Errorf("Expected default quantity 1, got %d", cart.Lines[0].Quantity)
	}

	// Opening the same line again is a no-op
	cart, err = builder.OpenLine(ctx, staffID, itemID)
	if err != nil {
		t.Fatalf("Second OpenLine failed: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Errorf("Expected open to be idempotent, got %d lines", len(cart.Lines))
	}
}

func TestOpenLineUnknownItem(t *testing.T) {
	builder, staffID, _ := setupBuilderTest(t)

	if _, err := builder.OpenLine(context.Background(), staffID, 999999); err == nil {
		t.Error("Expected error for unknown inventory item")
	}
}

func TestIncrementRejectsAtCap(t *testing.T) {
	builder, staffID, itemID := setupBuilderTest(t)
	ctx := context.Background()

	if _, err := builder.ConfirmLine(ctx, staffID, itemID, 30); err != nil {
		t.Fatalf("ConfirmLine at cap failed: %v", err)
	}

	cart, err := builder.Increment(ctx, staffID, itemID)
	if !errors.Is(err, request.ErrQuantityCapped) {
		t.Fatalf("Expected ErrQuantityCapped, got %v", err)
	}
	if cart.Lines[0].Quantity != 30 {
		t.Errorf("Expected quantity unchanged at 30, got %d", cart.Lines[0].Quantity)
	}

	// The stored cart keeps the capped quantity too
	stored, err := builder.GetCart(ctx, staffID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if stored.Lines[0].Quantity != 30 {
		t.Errorf("Expected stored quantity 30, got %d", stored.Lines[0].Quantity)
	}
}

func TestIncrementBelowCap(t *testing.T) {
	builder, staffID, itemID := setupBuilderTest(t)
	ctx := context.Background()

	if _, err := builder.OpenLine(ctx, staffID, itemID); err != nil {
		t.Fatalf("OpenLine failed: %v", err)
	}
	cart, err := builder.Increment(ctx, staffID, itemID)
	if err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if cart.Lines[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestDecrementFloorsAtOne(t *testing.T) {
	builder, staffID, itemID := setupBuilderTest(t)
	ctx := context.Background()

	if _, err := builder.OpenLine(ctx, staffID, itemID); err != nil {
		t.Fatalf("OpenLine failed: %v", err)
	}
	cart, err := builder.Decrement(ctx, staffID, itemID)
	if err != nil {
		t.Fatalf("Decrement failed: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Errorf("Expected quantity floored at 1, got %d", cart.Lines[0].Quantity)
	}
}

func TestConfirmLineValidation(t *testing.T) {
	builder, staffID, itemID := setupBuilderTest(t)
	ctx := context.Background()

	if _, err := builder.ConfirmLine(ctx, staffID, itemID, 0); !errors.Is(err, request.ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity for 0, got %v", err)
	}
	if _, err := builder.ConfirmLine(ctx, staffID, itemID, 31); !errors.Is(err, request.ErrQuantityCapped) {
		t.Errorf("Expected ErrQuantityCapped for 31, got %v", err)
	}

	cart, err := builder.ConfirmLine(ctx, staffID, itemID, 15)
	if err != nil {
		t.Fatalf("ConfirmLine failed: %v", err)
	}
	if cart.Lines[0].Quantity != 15 {
		t.Errorf("Expected quantity 15, got %d", cart.Lines[0].Quantity)
	}

	// Confirming again replaces the quantity rather than adding
	cart, err = builder.ConfirmLine(ctx, staffID, itemID, 8)
	if err != nil {
		t.Fatalf("Second ConfirmLine failed: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 8 {
		t.Errorf("Expected single line with quantity 8, got %+v", cart.Lines)
	}
}

func TestRemoveLineAndClear(t *testing.T) {
	builder, staffID, itemID := setupBuilderTest(t)
	ctx := context.Background()

	if _, err := builder.OpenLine(ctx, staffID, itemID); err != nil {
		t.Fatalf("OpenLine failed: %v", err)
	}

	cart, err := builder.RemoveLine(ctx, staffID, itemID)
	if err != nil {
		t.Fatalf("RemoveLine failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("Expected empty cart after remove, got %d lines", len(cart.Lines))
	}

	if _, err := builder.OpenLine(ctx, staffID, itemID); err != nil {
		t.Fatalf("OpenLine failed: %v", err)
	}
	if err := builder.Clear(ctx, staffID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cart, err = builder.GetCart(ctx, staffID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("Expected empty cart after clear, got %d lines", len(cart.Lines))
	}
}
