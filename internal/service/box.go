package service

import (
	"context"
	"fmt"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"
)

type BoxStock struct {
	BoxType *model.BoxType `json:"box_type"`
	Stock   int            `json:"stock"`
}

type BoxService interface {
	CreateType(ctx context.Context, req *dto.BoxTypeRequest) (*model.BoxType, error)
	UpdateType(ctx context.Context, id uint, req *dto.BoxTypeRequest) (*model.BoxType, error)
	DeleteType(ctx context.Context, id uint) error
	ListStock(ctx context.Context) ([]*BoxStock, error)

	// Adjust appends a delta entry to the inventory log. Negative
	// quantities record outgoing boxes.
	Adjust(ctx context.Context, req *dto.BoxInventoryRequest) (*model.BoxInventory, error)
	History(ctx context.Context, boxTypeID uint) ([]*model.BoxInventory, error)
}

type boxServiceImpl struct {
	repo repository.BoxRepository
}

func NewBoxService(repo repository.BoxRepository) BoxService {
	return &boxServiceImpl{
		repo: repo,
	}
}

func (s *boxServiceImpl) CreateType(ctx context.Context, req *dto.BoxTypeRequest) (*model.BoxType, error) {
	boxType := &model.BoxType{
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := s.repo.CreateType(ctx, boxType); err != nil {
		return nil, fmt.Errorf("create box type: %w", err)
	}

	return boxType, nil
}

func (s *boxServiceImpl) UpdateType(ctx context.Context, id uint, req *dto.BoxTypeRequest) (*model.BoxType, error) {
	boxType, err := s.repo.FindType(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	boxType.Name = req.Name
	boxType.Capacity = req.Capacity

	if err := s.repo.UpdateType(ctx, boxType); err != nil {
		return nil, fmt.Errorf("update box type: %w", err)
	}

	return boxType, nil
}

func (s *boxServiceImpl) DeleteType(ctx context.Context, id uint) error {
	return s.repo.DeleteType(ctx, id)
}

func (s *boxServiceImpl) ListStock(ctx context.Context) ([]*BoxStock, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list box types: %w", err)
	}

	stocks := make([]*BoxStock, len(types))
	for i, boxType := range types {
		level, err := s.repo.StockLevel(ctx, boxType.ID)
		if err != nil {
			return nil, fmt.Errorf("stock level for %q: %w", boxType.Name, err)
		}
		stocks[i] = &BoxStock{BoxType: boxType, Stock: level}
	}

	return stocks, nil
}

func (s *boxServiceImpl) Adjust(ctx context.Context, req *dto.BoxInventoryRequest) (*model.BoxInventory, error) {
	if _, err := s.repo.FindType(ctx, req.BoxTypeID); err != nil {
		return nil, ErrNotFound
	}

	entry := &model.BoxInventory{
		BoxTypeID: req.BoxTypeID,
		Quantity:  req.Quantity,
		Note:      req.Note,
	}

	if err := s.repo.AddInventory(ctx, entry); err != nil {
		return nil, fmt.Errorf("record box inventory: %w", err)
	}

	return entry, nil
}

func (s *boxServiceImpl) History(ctx context.Context, boxTypeID uint) ([]*model.BoxInventory, error) {
	return s.repo.ListInventory(ctx, boxTypeID)
}
