// Package telegram posts staff notifications to a Telegram chat through the
// Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/softglass/calculator-backend/utils/logger"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Notifier delivers a text message to the configured chat.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// ErrSendFailed is returned when the Bot API answers with a non-200 status.
var ErrSendFailed = errors.New("telegram: send message failed")

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
	breaker    *gobreaker.CircuitBreaker[struct{}]
}

// BreakerTimeout is how long an open breaker rejects calls before letting a
// single trial request through.
const BreakerTimeout = 30 * time.Second

type Option func(*options)

type options struct {
	breakerName string
}

// WithBreakerName names the circuit breaker in state change logs. Each
// Client owns its breaker, so callers that must fail independently get
// separate clients.
func WithBreakerName(name string) Option {
	return func(o *options) { o.breakerName = name }
}

func NewClient(cfg config.TelegramConfig, opts ...Option) *Client {
	o := options{breakerName: "telegram"}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.APIURL,
		token:      cfg.BotToken,
		chatID:     cfg.ChatID,
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        o.breakerName,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state change",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

// IsUnavailable reports whether err came from an open or half-open breaker
// rather than from a call to the Bot API.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (c *Client) SendMessage(ctx context.Context, text string) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.send(ctx, text)
	})
	return err
}

func (c *Client) send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
