package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом уведомлений
// Уведомления не критичны для допуска бронирования: все ошибки
// логируются и не пробрасываются вызывающей стороне
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет клиенту подтверждение бронирования
// Вызывается после коммита транзакции; сбой не влияет на результат допуска
func (c *Client) SendBookingConfirmation(ctx context.Context, notification BookingNotification) {
	if !c.enabled {
		return
	}

	if err := c.post(ctx, "/internal/notifications/booking-confirmed", notification); err != nil {
		c.log.Error("Failed to send booking confirmation for code=%s: %v", notification.ConfirmationCode, err)
		return
	}

	c.log.Info("Booking confirmation sent for code=%s", notification.ConfirmationCode)
}

// SendCancellation отправляет клиенту уведомление об отмене бронирования
func (c *Client) SendCancellation(ctx context.Context, notification CancellationNotification) {
	if !c.enabled {
		return
	}

	if err := c.post(ctx, "/internal/notifications/booking-cancelled", notification); err != nil {
		c.log.Error("Failed to send cancellation notification for code=%s: %v", notification.ConfirmationCode, err)
		return
	}

	c.log.Info("Cancellation notification sent for code=%s", notification.ConfirmationCode)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
