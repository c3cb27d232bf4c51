package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentCanBeRefunded(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentStatusCaptured, true},
		{PaymentStatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := &Payment{Status: tt.status}
			assert.Equal(t, tt.want, p.CanBeRefunded())
		})
	}
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodCard.IsValid())
	assert.False(t, PaymentMethod("crypto").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
