package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceCanBePaid(t *testing.T) {
	tests := []struct {
		status InvoiceStatus
		want   bool
	}{
		{InvoiceStatusIssued, true},
		{InvoiceStatusPaid, false},
		{InvoiceStatusVoid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			inv := &Invoice{Status: tt.status}
			assert.Equal(t, tt.want, inv.CanBePaid())
		})
	}
}

func TestInvoiceCanBeVoided(t *testing.T) {
	tests := []struct {
		status InvoiceStatus
		want   bool
	}{
		{InvoiceStatusIssued, true},
		// Оплаченный счёт сначала должен быть возвращён
		{InvoiceStatusPaid, false},
		{InvoiceStatusVoid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			inv := &Invoice{Status: tt.status}
			assert.Equal(t, tt.want, inv.CanBeVoided())
		})
	}
}
