package order

import (
	"context"

	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/model"
	orderrepo "github.com/softglass/calculator-backend/repository/order"
	"github.com/softglass/calculator-backend/thirdparty/rabbitmq"
	"github.com/softglass/calculator-backend/utils/errors"
	"github.com/softglass/calculator-backend/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, userID uint64, req *model.OrderRequest) (*model.OrderResponse, error)
	ListOrders(ctx context.Context, userID uint64) (*model.OrderListResponse, error)
}

type orderAppImpl struct {
	config    *config.Config
	orderRepo orderrepo.OrderRepository
	publisher rabbitmq.EventPublisher
}

// NewOrderApp wires the order service. publisher may be nil when RabbitMQ is
// not configured.
func NewOrderApp(config *config.Config, orderRepo orderrepo.OrderRepository, publisher rabbitmq.EventPublisher) OrderApp {
	return &orderAppImpl{config: config, orderRepo: orderRepo, publisher: publisher}
}

func (s *orderAppImpl) CreateOrder(ctx context.Context, userID uint64, req *model.OrderRequest) (*model.OrderResponse, error) {
	if userID == 0 {
		return nil, errors.SetCustomError(constant.ErrMissingToken)
	}
	if req == nil || req.OrderData.Empty() {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderData)
	}

	owner := userID
	inserted, err := s.orderRepo.Insert(ctx, &model.InsertOrderItem{
		UserID:     &owner,
		OrderData:  req.OrderData,
		TotalPrice: req.TotalPrice,
		Status:     constant.OrderStatusNew,
	})
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		msg := rabbitmq.OrderCreatedMessage{
			OrderID:    inserted.ID,
			UserID:     &owner,
			TotalPrice: req.TotalPrice,
			Source:     constant.OrderSourceAccount,
			CreatedAt:  inserted.CreatedAt,
		}
		if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
			logger.Error("[CreateOrder] publish order created",
				zap.Uint64("order_id", inserted.ID),
				zap.String("error", err.Error()),
			)
		}
	}

	return &model.OrderResponse{
		OrderID:   inserted.ID,
		CreatedAt: inserted.CreatedAt,
		Status:    constant.OrderStatusNew,
	}, nil
}

// ListOrders returns the caller's orders, newest first. A user without orders
// gets an empty list.
func (s *orderAppImpl) ListOrders(ctx context.Context, userID uint64) (*model.OrderListResponse, error) {
	if userID == 0 {
		return nil, errors.SetCustomError(constant.ErrMissingToken)
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListOrders] list by user", zap.Uint64("user_id", userID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if orders == nil {
		orders = []model.OrderEntity{}
	}

	return &model.OrderListResponse{Orders: orders}, nil
}
