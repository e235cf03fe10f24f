package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusDelivered, false},
		{StatusPaid, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPaid, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
		{StatusPending, StatusPending, false},
	}

	for _, c := range cases {
		assert.Equalf(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, Status("refunded").Valid())
	assert.False(t, Status("PENDING").Valid())
	assert.False(t, Status("").Valid())
}

func TestOrder_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Order{Status: StatusPaid}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusShipped}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusDelivered}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusCancelled}).CanBeCancelled())
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusPaid.Terminal())
	assert.False(t, StatusShipped.Terminal())
}
