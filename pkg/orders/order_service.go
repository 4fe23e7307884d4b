package orders

import (
	"context"
	"errors"
	"math"

	"brewstock/domain"
	"brewstock/entities"
	"brewstock/internal/monitoring"
	"brewstock/pkg/consumption"
	"brewstock/pkg/payment"
	"brewstock/pkg/recipes"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	OrderService interface {
		CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error)
		GetOrder(ctx context.Context, id string) (domain.OrderResponse, error)
		GetOrders(ctx context.Context, status string, page, limit int) ([]domain.OrderResponse, int64, error)
		HandleNotification(ctx context.Context, notification domain.PaymentNotification) error
	}

	orderService struct {
		orderRepository    OrderRepository
		recipeRepository   recipes.RecipeRepository
		consumptionService consumption.ConsumptionService
		paymentService     payment.PaymentService
		metrics            *monitoring.Metrics
		log                *zap.Logger
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	recipeRepository recipes.RecipeRepository,
	consumptionService consumption.ConsumptionService,
	paymentService payment.PaymentService,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderService{
		orderRepository:    orderRepository,
		recipeRepository:   recipeRepository,
		consumptionService: consumptionService,
		paymentService:     paymentService,
		metrics:            metrics,
		log:                log,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error) {
	if len(req.Lines) == 0 {
		return domain.CreateOrderResponse{}, domain.ErrEmptyOrder
	}

	var total float64
	lines := make([]entities.OrderLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		sellable, err := s.recipeRepository.GetSellableByID(ctx, lineReq.SellableID)
		if err != nil {
			return domain.CreateOrderResponse{}, domain.ErrSellableNotFound
		}

		unitPrice := sellable.Price
		modifiers := make([]uuid.UUID, 0, len(lineReq.ModifierIDs))
		for _, modifierID := range lineReq.ModifierIDs {
			modifier, err := s.recipeRepository.GetSellableByID(ctx, modifierID)
			if err != nil {
				return domain.CreateOrderResponse{}, domain.ErrSellableNotFound
			}
			unitPrice += modifier.Price
			modifiers = append(modifiers, modifier.ID)
		}

		line := entities.OrderLine{
			SellableID: sellable.ID,
			Quantity:   lineReq.Quantity,
			UnitPrice:  unitPrice,
		}
		if err := line.SetModifiers(modifiers); err != nil {
			return domain.CreateOrderResponse{}, err
		}

		total += unitPrice * float64(lineReq.Quantity)
		lines = append(lines, line)
	}

	order := &entities.Order{
		CustomerEmail: req.CustomerEmail,
		Status:        entities.OrderStatusPending,
		TotalAmount:   math.Round(total*100) / 100,
		Lines:         lines,
	}
	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		return domain.CreateOrderResponse{}, err
	}

	paymentRes, err := s.paymentService.CreateTransaction(ctx, domain.PaymentRequest{
		OrderID:     order.ID.String(),
		AmountCents: int64(math.Round(order.TotalAmount * 100)),
		Email:       order.CustomerEmail,
	})
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}

	order.InvoiceURL = paymentRes.InvoiceURL
	if err := s.orderRepository.UpdateOrder(ctx, order); err != nil {
		return domain.CreateOrderResponse{}, err
	}

	return domain.CreateOrderResponse{
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount,
		InvoiceURL:  order.InvoiceURL,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (domain.OrderResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.OrderResponse{}, domain.ErrParseUUID
	}

	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}

	return toOrderResponse(order), nil
}

func (s *orderService) GetOrders(ctx context.Context, status string, page, limit int) ([]domain.OrderResponse, int64, error) {
	orders, count, err := s.orderRepository.GetOrders(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		res = append(res, toOrderResponse(order))
	}
	return res, count, nil
}

// HandleNotification settles or voids an order from a verified payment
// webhook. Settlement deducts inventory through the consumption engine in
// advisory mode so unmatched recipe lines never block the sale.
func (s *orderService) HandleNotification(ctx context.Context, notification domain.PaymentNotification) error {
	if err := s.paymentService.VerifyNotification(notification); err != nil {
		return err
	}

	if _, err := uuid.Parse(notification.OrderID); err != nil {
		return domain.ErrParseUUID
	}

	order, err := s.orderRepository.GetOrderByID(ctx, notification.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if order.Status != entities.OrderStatusPending {
		return domain.ErrOrderAlreadyFinal
	}

	switch notification.TransactionStatus {
	case "settlement":
		return s.settle(ctx, order)
	case "capture":
		if notification.FraudStatus == "accept" {
			return s.settle(ctx, order)
		}
		return s.finalize(ctx, order, entities.OrderStatusCancelled)
	case "deny", "cancel":
		return s.finalize(ctx, order, entities.OrderStatusCancelled)
	case "expire":
		return s.finalize(ctx, order, entities.OrderStatusExpired)
	default:
		s.log.Info("ignoring payment notification",
			zap.String("order_id", notification.OrderID),
			zap.String("transaction_status", notification.TransactionStatus))
		return nil
	}
}

func (s *orderService) settle(ctx context.Context, order *entities.Order) error {
	for i := range order.Lines {
		line := &order.Lines[i]

		modifiers := make([]string, 0)
		for _, id := range line.ModifierList() {
			modifiers = append(modifiers, id.String())
		}

		result, err := s.consumptionService.Compute(ctx, domain.ComputeConsumptionRequest{
			Line: domain.SaleLine{
				SellableID:  line.SellableID.String(),
				Quantity:    line.Quantity,
				ModifierIDs: modifiers,
			},
		})
		if err != nil {
			if errors.Is(err, domain.ErrRecipeNotFound) {
				s.log.Warn("sold item has no recipe, skipping deduction",
					zap.String("order_id", order.ID.String()),
					zap.String("sellable_id", line.SellableID.String()))
				continue
			}
			return err
		}

		s.metrics.ConsumptionsComputed.Inc()
		if len(result.Missing) > 0 {
			s.metrics.MissingIngredients.Add(float64(len(result.Missing)))
			for _, missing := range result.Missing {
				s.log.Warn("unresolved recipe line during settlement",
					zap.String("order_id", order.ID.String()),
					zap.String("line", missing.Label),
					zap.String("reason", missing.Reason))
			}
		}

		if err := s.consumptionService.Apply(ctx, result); err != nil {
			return err
		}
	}

	if err := s.finalize(ctx, order, entities.OrderStatusSettled); err != nil {
		return err
	}
	s.metrics.OrdersSettled.Inc()
	return nil
}

func (s *orderService) finalize(ctx context.Context, order *entities.Order, status string) error {
	order.Status = status
	return s.orderRepository.UpdateOrder(ctx, order)
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	lines := make([]domain.OrderLineResponse, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]

		name := ""
		if line.Sellable != nil {
			name = line.Sellable.Name
		}
		modifiers := make([]string, 0)
		for _, id := range line.ModifierList() {
			modifiers = append(modifiers, id.String())
		}

		lines = append(lines, domain.OrderLineResponse{
			SellableID:  line.SellableID.String(),
			Name:        name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			ModifierIDs: modifiers,
		})
	}

	return domain.OrderResponse{
		ID:            order.ID.String(),
		CustomerEmail: order.CustomerEmail,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		InvoiceURL:    order.InvoiceURL,
		Lines:         lines,
		CreatedAt:     order.Timestamp.CreatedAt,
	}
}
