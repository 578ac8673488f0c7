package checkoutControllers

import (
	"strconv"
	"strings"
	"testing"
	"time"

	cartControllers "github.com/quickbasket-in/storefront-api/controllers/cart"
	paymentControllers "github.com/quickbasket-in/storefront-api/controllers/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGateway fails the test if the orchestrator reaches it.
type countingGateway struct {
	t     *testing.T
	calls int
}

func (g *countingGateway) CreateOrder(amountMinor int64, currency, receipt string) (*paymentControllers.GatewayOrder, error) {
	g.calls++
	g.t.Fatal("gateway reached before validation passed")
	return nil, nil
}

func (g *countingGateway) VerifySignature(orderRef, paymentID, signature string) bool {
	g.calls++
	return false
}

// Validation failures must happen before any persistence or gateway call: a
// nil *gorm.DB would panic on first use, so reaching the error proves nothing
// was touched.
func TestPlaceOrderValidatesBeforeAnyCall(t *testing.T) {
	gw := &countingGateway{t: t}
	identity := cartControllers.Identity{ID: "user-1"}

	_, err := PlaceOrder(nil, gw, nil, identity, PlaceOrderRequest{
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, ErrMissingAddress)

	_, err = PlaceOrder(nil, gw, nil, identity, PlaceOrderRequest{
		AddressID: 7,
	})
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)

	_, err = PlaceOrder(nil, gw, nil, identity, PlaceOrderRequest{
		AddressID:     7,
		PaymentMethod: "cheque",
	})
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)

	assert.Zero(t, gw.calls)
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"cash", "card", "upi", "wallet"} {
		assert.True(t, validPaymentMethod(m), m)
	}
	for _, m := range []string{"", "cod", "CASH", "netbanking"} {
		assert.False(t, validPaymentMethod(m), m)
	}
}

func TestOrderNumberFormat(t *testing.T) {
	n := OrderNumber()
	require.True(t, strings.HasPrefix(n, "ORD-"), n)

	token := strings.TrimPrefix(n, "ORD-")
	assert.Equal(t, strings.ToUpper(token), token)

	// The token decodes back to a recent millisecond timestamp.
	millis, err := strconv.ParseInt(strings.ToLower(token), 36, 64)
	require.NoError(t, err)
	ts := time.UnixMilli(millis)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestOrderNumberMonotonicAcrossTicks(t *testing.T) {
	first := OrderNumber()
	time.Sleep(2 * time.Millisecond)
	second := OrderNumber()
	assert.NotEqual(t, first, second)
}
