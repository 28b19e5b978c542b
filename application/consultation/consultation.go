// Package consultation forwards callback requests from the storefront to the
// staff Telegram chat.
package consultation

import (
	"context"
	stderrors "errors"
	"fmt"
	"html"
	"strings"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/model"
	"github.com/softglass/calculator-backend/thirdparty/telegram"
	"github.com/softglass/calculator-backend/utils/errors"
	"github.com/softglass/calculator-backend/utils/logger"
	validatorx "github.com/softglass/calculator-backend/utils/validator"
	"go.uber.org/zap"
)

type ConsultationApp interface {
	Submit(ctx context.Context, req *model.ConsultationRequest) error
}

type consultationAppImpl struct {
	notifier telegram.Notifier
}

// NewConsultationApp returns the service. A nil notifier means the bot
// credentials are missing and every submission fails with
// ErrNotifierNotConfigured.
func NewConsultationApp(notifier telegram.Notifier) ConsultationApp {
	return &consultationAppImpl{notifier: notifier}
}

func (s *consultationAppImpl) Submit(ctx context.Context, req *model.ConsultationRequest) error {
	if err := validatorx.ValidateStruct(req); err != nil {
		return validationError(err)
	}

	if s.notifier == nil {
		return errors.SetCustomError(constant.ErrNotifierNotConfigured)
	}

	if err := s.notifier.SendMessage(ctx, formatConsultation(req)); err != nil {
		logger.Error("[Consultation] send telegram message", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrNotifierFailed)
	}

	return nil
}

// validationError reports the first offending field.
func validationError(err error) error {
	var fieldErrs gpvalidator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Name":
			return errors.SetCustomError(constant.ErrInvalidName)
		case "Phone":
			return errors.SetCustomError(constant.ErrInvalidPhone)
		}
	}
	return errors.SetCustomError(constant.ErrInvalidRequest)
}

func formatConsultation(req *model.ConsultationRequest) string {
	var b strings.Builder
	b.WriteString("🔔 Новая заявка на консультацию!\n\n")
	fmt.Fprintf(&b, "👤 Имя: %s\n", html.EscapeString(req.Name))
	fmt.Fprintf(&b, "📞 Телефон: %s\n\n", html.EscapeString(req.Phone))
	b.WriteString("⏰ Свяжитесь с клиентом в ближайшее время!")
	return b.String()
}
