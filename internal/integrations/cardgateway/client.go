package cardgateway

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза для карточных платежей
type Client struct {
	log Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
// Ключ API задается глобально через stripe.Key при старте сервиса
func NewClient(apiKey string, log Logger) *Client {
	stripe.Key = apiKey
	return &Client{log: log}
}

// Charge списывает сумму с карты клиента и возвращает идентификатор операции
// Сумма передается в минорных единицах валюты (копейки, центы)
func (c *Client) Charge(amountMinor int64, currency string, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
		Confirm:     stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		c.log.Error("Card charge failed: amount=%d %s: %v", amountMinor, currency, err)
		return "", fmt.Errorf("%w: %w", ErrChargeDeclined, err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		c.log.Error("Card charge not completed: intent=%s status=%s", intent.ID, intent.Status)
		return "", fmt.Errorf("%w: intent %s in status %s", ErrChargeDeclined, intent.ID, intent.Status)
	}

	c.log.Info("Card charge succeeded: intent=%s amount=%d %s", intent.ID, amountMinor, currency)
	return intent.ID, nil
}

// Refund возвращает списанную сумму по идентификатору операции
func (c *Client) Refund(intentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}

	r, err := refund.New(params)
	if err != nil {
		c.log.Error("Refund failed: intent=%s: %v", intentID, err)
		return fmt.Errorf("%w: %w", ErrRefundFailed, err)
	}

	c.log.Info("Refund succeeded: intent=%s refund=%s", intentID, r.ID)
	return nil
}
