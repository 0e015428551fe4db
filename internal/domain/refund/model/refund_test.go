package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		current RefundStatus
		next    RefundStatus
		allowed bool
	}{
		{"pending to processing", RefundPending, RefundProcessing, true},
		{"pending to accepted", RefundPending, RefundAccepted, true},
		{"pending to rejected", RefundPending, RefundRejected, true},
		{"pending cannot complete directly", RefundPending, RefundCompleted, false},
		{"processing to completed", RefundProcessing, RefundCompleted, true},
		{"processing to failed", RefundProcessing, RefundFailed, true},
		{"processing cannot be rejected", RefundProcessing, RefundRejected, false},
		{"accepted to completed", RefundAccepted, RefundCompleted, true},
		{"rejected is terminal", RefundRejected, RefundProcessing, false},
		{"completed is terminal", RefundCompleted, RefundFailed, false},
		{"failed is terminal", RefundFailed, RefundPending, false},
		{"completed self loop", RefundCompleted, RefundCompleted, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.current, tc.next))
		})
	}
}
