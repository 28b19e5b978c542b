package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(config.TelegramConfig{
		BotToken: "123:abc",
		ChatID:   "-100500",
		APIURL:   url,
		Timeout:  time.Second,
	})
}

func TestClient_SendMessage(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendMessage(context.Background(), "<b>hi</b>")
	require.NoError(t, err)
	assert.Equal(t, "-100500", got.ChatID)
	assert.Equal(t, "<b>hi</b>", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
}

func TestClient_SendMessage_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).SendMessage(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, c.SendMessage(context.Background(), "hi"), ErrSendFailed)
	}

	err := c.SendMessage(context.Background(), "hi")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsUnavailable(err))
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestClient_SeparateClientsHaveSeparateBreakers(t *testing.T) {
	var failing int32 = 1
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&failing) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	relay := NewClient(config.TelegramConfig{BotToken: "123:abc", ChatID: "1", APIURL: srv.URL, Timeout: time.Second},
		WithBreakerName("telegram-relay"))
	consultation := newTestClient(srv.URL)

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, relay.SendMessage(context.Background(), "hi"), ErrSendFailed)
	}
	assert.True(t, IsUnavailable(relay.SendMessage(context.Background(), "hi")))

	atomic.StoreInt32(&failing, 0)
	assert.NoError(t, consultation.SendMessage(context.Background(), "hi"))
	assert.True(t, IsUnavailable(relay.SendMessage(context.Background(), "hi")))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(gobreaker.ErrOpenState))
	assert.True(t, IsUnavailable(gobreaker.ErrTooManyRequests))
	assert.False(t, IsUnavailable(ErrSendFailed))
	assert.False(t, IsUnavailable(nil))
}
