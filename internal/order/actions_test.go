package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionsFor_InvoiceAvailability(t *testing.T) {
	// COD invoices exist only after delivery; prepaid from shipment onwards.
	tests := []struct {
		status Status
		cod    bool
		nonCOD bool
	}{
		{StatusPlaced, false, false},
		{StatusConfirmed, false, false},
		{StatusPacked, false, false},
		{StatusShipped, false, true},
		{StatusOutForDelivery, false, false},
		{StatusDelivered, true, true},
	}

	for _, tt := range tests {
		gotCOD := ActionsFor(tt.status, MethodCOD)
		assert.Equal(t, tt.cod, gotCOD.InvoiceAvailable, "cod %s", tt.status)

		gotPrepaid := ActionsFor(tt.status, MethodRazorpay)
		assert.Equal(t, tt.nonCOD, gotPrepaid.InvoiceAvailable, "non-cod %s", tt.status)
	}
}

func TestActionsFor_CODHelperText(t *testing.T) {
	shipped := ActionsFor(StatusShipped, MethodCOD)
	assert.False(t, shipped.InvoiceAvailable)
	assert.Equal(t, InvoiceHelperCOD, shipped.InvoiceHelperText)

	delivered := ActionsFor(StatusDelivered, MethodCOD)
	assert.True(t, delivered.InvoiceAvailable)
	assert.Empty(t, delivered.InvoiceHelperText)

	prepaidPlaced := ActionsFor(StatusPlaced, MethodPhonePe)
	assert.Empty(t, prepaidPlaced.InvoiceHelperText, "helper text is COD-specific")
}

func TestActionsFor_Cancel(t *testing.T) {
	for _, s := range []Status{StatusPlaced, StatusConfirmed} {
		assert.True(t, ActionsFor(s, MethodCOD).ShowCancel, "%s", s)
	}
	for _, s := range []Status{StatusPacked, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.False(t, ActionsFor(s, MethodCOD).ShowCancel, "%s", s)
	}
}

func TestActionsFor_Return(t *testing.T) {
	assert.True(t, ActionsFor(StatusDelivered, MethodPaytm).ShowReturn)
	for _, s := range []Status{StatusPlaced, StatusShipped, StatusCancelled, StatusReturnRequested} {
		assert.False(t, ActionsFor(s, MethodPaytm).ShowReturn, "%s", s)
	}
}

func TestActionsFor_Track(t *testing.T) {
	for _, s := range []Status{StatusShipped, StatusOutForDelivery} {
		assert.True(t, ActionsFor(s, MethodCOD).ShowTrack, "%s", s)
	}
	for _, s := range []Status{StatusPlaced, StatusConfirmed, StatusPacked, StatusDelivered} {
		assert.False(t, ActionsFor(s, MethodCOD).ShowTrack, "%s", s)
	}
}

func TestActionsFor_SameForAllSurfaces(t *testing.T) {
	// The predicate must be deterministic: wherever it is evaluated, the same
	// (status, method) pair yields the same availability.
	a := ActionsFor(StatusShipped, MethodCOD)
	b := ActionsFor(StatusShipped, MethodCOD)
	assert.Equal(t, a, b)
}

func TestAmountLabel(t *testing.T) {
	assert.Equal(t, "payable on delivery", AmountLabel(MethodCOD))
	assert.Equal(t, "total", AmountLabel(MethodRazorpay))
	assert.Equal(t, "total", AmountLabel(MethodPhonePe))
}

func TestKnownPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{MethodCOD, MethodRazorpay, MethodPhonePe, MethodPaytm} {
		assert.True(t, KnownPaymentMethod(m), "%s", m)
	}
	assert.False(t, KnownPaymentMethod("bitcoin"))
	assert.False(t, KnownPaymentMethod(""))
}
