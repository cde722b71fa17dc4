// internal/domain/request/builder.go
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// Builder accumulates per-staff request lines in Redis before submission.
// Quantities are capped at reorder_level * multiplier per item; attempts to
// exceed the cap are rejected, never truncated.
type Builder struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewBuilder creates a new request builder
func NewBuilder(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Builder {
	return &Builder{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

func cartKey(staffID uint) string {
	return fmt.Sprintf("request_cart:%d", staffID)
}

// GetCart retrieves the staff member's request cart, creating an empty one if absent
func (b *Builder) GetCart(ctx context.Context, staffID uint) (*RequestCart, error) {
	data, err := b.redisClient.Get(ctx, cartKey(staffID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &RequestCart{
			StaffID:   staffID,
			Lines:     []RequestLine{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve request cart: %w", err)
	}

	var cart RequestCart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request cart: %w", err)
	}
	return &cart, nil
}

// saveCart persists the cart back to Redis with the configured TTL
func (b *Builder) saveCart(ctx context.Context, cart *RequestCart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal request cart: %w", err)
	}
	if err := b.redisClient.Set(ctx, cartKey(cart.StaffID), data, b.config.Procurement.RequestCartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save request cart: %w", err)
	}
	return nil
}

// maxQuantity resolves the request ceiling for an item
func (b *Builder) maxQuantity(itemID uint) (int, error) {
	var item inventory.InventoryItem
	if err := b.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return 0, fmt.Errorf("inventory item not found")
	}
	return item.MaxRequestQuantity(b.config.Procurement.QuantityCapMultiplier), nil
}

// OpenLine opens a request line for an item with the default quantity of 1.
// Opening an already-open line is a no-op.
func (b *Builder) OpenLine(ctx context.Context, staffID, itemID uint) (*RequestCart, error) {
	if _, err := b.maxQuantity(itemID); err != nil {
		return nil, err
	}

	cart, err := b.GetCart(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if cart.FindLine(itemID) == nil {
		cart.Lines = append(cart.Lines, RequestLine{
			InventoryItemID: itemID,
			Quantity:        1,
			AddedAt:         time.Now().UTC(),
		})
	}

	if err := b.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Increment raises a line's quantity by 1. At the cap the increment is
// rejected with ErrQuantityCapped and the stored quantity is unchanged.
func (b *Builder) Increment(ctx context.Context, staffID, itemID uint) (*RequestCart, error) {
	max, err := b.maxQuantity(itemID)
	if err != nil {
		return nil, err
	}

	cart, err := b.GetCart(ctx, staffID)
	if err != nil {
		return nil, err
	}

	line := cart.FindLine(itemID)
	if line == nil {
		return nil, ErrLineNotFound
	}

	if line.Quantity >= max {
		return cart, ErrQuantityCapped
	}

	line.Quantity++
	if err := b.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Decrement lowers a line's quantity by 1, floored at 1
func (b *Builder) Decrement(ctx context.Context, staffID, itemID uint) (*RequestCart, error) {
	cart, err := b.GetCart(ctx, staffID)
	if err != nil {
		return nil, err
	}

	line := cart.FindLine(itemID)
	if line == nil {
		return nil, ErrLineNotFound
	}

	if line.Quantity > 1 {
		line.Quantity--
	}

	if err := b.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ConfirmLine sets a line to an explicit quantity, validating it against the cap.
// Quantities outside [1, max] are rejected before any persistence.
func (b *Builder) ConfirmLine(ctx context.Context, staffID, itemID uint, quantity int) (*RequestCart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	max, err := b.maxQuantity(itemID)
	if err != nil {
		return nil, err
	}
	if quantity > max {
		return nil, ErrQuantityCapped
	}

	cart, err := b.GetCart(ctx, staffID)
	if err != nil {
		return nil, err
	}

	line := cart.FindLine(itemID)
	if line == nil {
		cart.Lines = append(cart.Lines, RequestLine{
			InventoryItemID: itemID,
			Quantity:        quantity,
			AddedAt:         time.Now().UTC(),
		})
	} else {
		line.Quantity = quantity
	}

	if err := b.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine cancels a single accumulated line
func (b *Builder) RemoveLine(ctx context.Context, staffID, itemID uint) (*RequestCart, error) {
	cart, err := b.GetCart(ctx, staffID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(itemID)

	if err := b.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear discards the whole cart
func (b *Builder) Clear(ctx context.Context, staffID uint) error {
	if err := b.redisClient.Del(ctx, cartKey(staffID)).Err(); err != nil {
		return fmt.Errorf("failed to clear request cart: %w", err)
	}
	return nil
}
