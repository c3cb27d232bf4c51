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
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление пользователю
func (c *Client) Send(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %w", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendWithGracefulDegradation отправляет уведомление с graceful degradation
// При недоступности сервиса уведомлений возвращает ErrServiceDegraded:
// запись или отмена не должны падать из-за проблем с рассылкой
func (c *Client) SendWithGracefulDegradation(ctx context.Context, msg Message) error {
	c.log.Info("Sending notification event=%s to user_id=%d", msg.Event, msg.UserID)

	if err := c.Send(ctx, msg); err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Notifier unavailable, applying graceful degradation for user_id=%d: %v", msg.UserID, err)
		return fmt.Errorf("%w: user_id=%d, event=%s, error=%v", ErrServiceDegraded, msg.UserID, msg.Event, err)
	}

	c.log.Info("Successfully sent notification event=%s to user_id=%d", msg.Event, msg.UserID)
	return nil
}
