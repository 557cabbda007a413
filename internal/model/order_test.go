package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range AllOrderStatuses {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}
	assert.False(t, OrderStatus("Returned").IsValid())
	assert.False(t, OrderStatus("pending").IsValid(), "status values are case sensitive")
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderProcessing.IsTerminal())
	assert.False(t, OrderShipped.IsTerminal())
}
