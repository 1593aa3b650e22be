package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	Get(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, status string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	// ResolveItems returns the order's line items, reconstructing them from
	// the metadata blob when no structured rows exist. Reconstructed items
	// are not persisted.
	ResolveItems(ctx context.Context, id uint) ([]*model.OrderItem, error)
	// FixUpItems persists the reconstructed items as real order_items rows.
	FixUpItems(ctx context.Context, id uint) ([]*model.OrderItem, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	pricing   PricingService
	logger    *slog.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	pricing PricingService,
	logger *slog.Logger,
) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
		pricing:   pricing,
		logger:    logger,
	}
}

func (s *orderServiceImpl) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) List(ctx context.Context, status string) ([]*model.Order, error) {
	return s.orderRepo.List(ctx, status)
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	return s.orderRepo.UpdateStatus(ctx, s.db, id, status)
}

func (s *orderServiceImpl) ResolveItems(ctx context.Context, id uint) ([]*model.OrderItem, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	items, err := s.orderRepo.GetItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	if len(items) > 0 {
		return items, nil
	}

	return s.reconstructFromMetadata(ctx, order)
}

func (s *orderServiceImpl) FixUpItems(ctx context.Context, id uint) ([]*model.OrderItem, error) {
	items, err := s.ResolveItems(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.ReplaceItems(ctx, tx, id, items)
	})
	if err != nil {
		return nil, fmt.Errorf("persist reconstructed items: %w", err)
	}

	return items, nil
}

// metadataCartItem tolerates the shapes the metadata blob has accumulated:
// id as string or number, qty vs quantity, price present or not.
type metadataCartItem struct {
	ID       flexString `json:"id"`
	Qty      int        `json:"qty"`
	Quantity int        `json:"quantity"`
	Name     string     `json:"name"`
	Size     string     `json:"size"`
	Type     string     `json:"type"`
	Shape    string     `json:"shape"`
	Price    float64    `json:"price"`
}

// flexString decodes a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())

	return nil
}

func (s *orderServiceImpl) reconstructFromMetadata(ctx context.Context, order *model.Order) ([]*model.OrderItem, error) {
	if order.Metadata == "" {
		return nil, nil
	}

	var meta map[string]json.RawMessage
	if err := json.Unmarshal([]byte(order.Metadata), &meta); err != nil {
		return nil, fmt.Errorf("decode order metadata: %w", err)
	}

	raw, ok := meta["cart_items"]
	if !ok {
		return nil, nil
	}

	entries, err := decodeCartItems(raw)
	if err != nil {
		return nil, fmt.Errorf("decode metadata cart_items: %w", err)
	}

	items := make([]*model.OrderItem, 0, len(entries))
	for _, entry := range entries {
		identifier := string(entry.ID)

		productID := identifier
		if id, ok := s.pricing.ResolveProductID(ctx, identifier); ok {
			productID = strconv.FormatUint(uint64(id), 10)
		} else {
			s.logger.Warn("unresolved product identifier in metadata", "order_id", order.ID, "identifier", identifier)
		}

		quantity := entry.Qty
		if quantity == 0 {
			quantity = entry.Quantity
		}
		if quantity == 0 {
			quantity = 1
		}

		shape := entry.Shape
		if shape == "" {
			if isDubaiBar(identifier) {
				shape = "rectangular"
			} else {
				shape = "none"
			}
		}

		price := entry.Price
		if price == 0 {
			price = s.pricing.ResolvePrice(ctx, identifier, entry.Size, entry.Type, shape)
		}

		items = append(items, &model.OrderItem{
			OrderID:   order.ID,
			ProductID: productID,
			Name:      entry.Name,
			Size:      entry.Size,
			Type:      entry.Type,
			Shape:     shape,
			Quantity:  quantity,
			Price:     price,
		})
	}

	return items, nil
}

// decodeCartItems handles cart_items stored either as a JSON array or as a
// JSON string containing an array.
func decodeCartItems(raw json.RawMessage) ([]metadataCartItem, error) {
	var entries []metadataCartItem
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}

	var nested string
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(nested), &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
