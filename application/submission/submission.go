// Package submission persists calculator carts sent from the storefront and
// mails a summary with the customer's photos and documents to the office.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/model"
	orderrepo "github.com/softglass/calculator-backend/repository/order"
	"github.com/softglass/calculator-backend/thirdparty/mailer"
	"github.com/softglass/calculator-backend/thirdparty/rabbitmq"
	"github.com/softglass/calculator-backend/utils/errors"
	"github.com/softglass/calculator-backend/utils/logger"
	"go.uber.org/zap"
)

type SubmissionApp interface {
	Submit(ctx context.Context, req *model.SubmissionRequest) (*model.NotificationResponse, error)
}

type Option func(*submissionAppImpl)

// WithClock overrides the time source used for the created_at stamp.
func WithClock(now func() time.Time) Option {
	return func(s *submissionAppImpl) {
		s.now = now
	}
}

type submissionAppImpl struct {
	config    *config.Config
	orderRepo orderrepo.OrderRepository
	mailer    mailer.Mailer
	publisher rabbitmq.EventPublisher
	now       func() time.Time
}

// NewSubmissionApp wires the service. publisher may be nil.
func NewSubmissionApp(config *config.Config, orderRepo orderrepo.OrderRepository, m mailer.Mailer, publisher rabbitmq.EventPublisher, opts ...Option) SubmissionApp {
	s := &submissionAppImpl{
		config:    config,
		orderRepo: orderRepo,
		mailer:    m,
		publisher: publisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *submissionAppImpl) Submit(ctx context.Context, req *model.SubmissionRequest) (*model.NotificationResponse, error) {
	if req == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	total, err := parseTotal(req.Total)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	windows := req.Windows
	if windows == nil {
		windows = []json.RawMessage{}
	}
	orderData, err := json.Marshal(model.SubmissionOrderData{
		Windows:     windows,
		Comment:     req.Comment,
		ImagesCount: len(req.Images),
		FilesCount:  len(req.Files),
		CreatedAt:   s.now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("[Submission] marshal order data", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	inserted, err := s.orderRepo.Insert(ctx, &model.InsertOrderItem{
		OrderData:  orderData,
		TotalPrice: total,
		Status:     constant.OrderStatusNew,
	})
	if err != nil {
		logger.Error("[Submission] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, inserted, total)

	body, err := renderEmail(inserted.ID, req)
	if err != nil {
		logger.Error("[Submission] render email", zap.Uint64("order_id", inserted.ID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	msg := &mailer.Message{
		To:          []string{s.config.SMTP.To},
		Subject:     fmt.Sprintf("Заявка #%d на расчет ПВХ окон - %d шт", inserted.ID, len(req.Windows)),
		HTMLBody:    body,
		Attachments: collectAttachments(req),
	}
	if s.mailer == nil {
		logger.Error("[Submission] mailer not configured", zap.Uint64("order_id", inserted.ID))
		return nil, errors.SetCustomError(constant.ErrMailDelivery)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Error("[Submission] send email", zap.Uint64("order_id", inserted.ID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrMailDelivery)
	}

	logger.Info("[Submission] order submitted",
		zap.Uint64("order_id", inserted.ID),
		zap.Int("windows", len(req.Windows)),
		zap.Int("attachments", len(msg.Attachments)),
	)

	return &model.NotificationResponse{
		Success: true,
		Message: fmt.Sprintf("Заявка #%d отправлена", inserted.ID),
		OrderID: inserted.ID,
	}, nil
}

func (s *submissionAppImpl) publish(ctx context.Context, inserted *model.InsertedOrder, total float64) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderCreated(ctx, rabbitmq.OrderCreatedMessage{
		OrderID:    inserted.ID,
		TotalPrice: total,
		Source:     constant.OrderSourceSubmission,
		CreatedAt:  inserted.CreatedAt,
	})
	if err != nil {
		logger.Error("[Submission] publish order created",
			zap.Uint64("order_id", inserted.ID),
			zap.String("error", err.Error()),
		)
	}
}

// parseTotal accepts an absent total as zero.
func parseTotal(n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	return strconv.ParseFloat(string(n), 64)
}
