package orders

import (
	"brewstock/entities"
	"context"

	"gorm.io/gorm"
)

type (
	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		UpdateOrder(ctx context.Context, order *entities.Order) error
		GetOrders(ctx context.Context, status string, page, limit int) ([]*entities.Order, int64, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) GetOrders(ctx context.Context, status string, page, limit int) ([]*entities.Order, int64, error) {
	var result []*entities.Order
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.Order{})
	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Lines").
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, count, nil
}
