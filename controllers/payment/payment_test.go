package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderRef, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	orderRef := "gw_order_123"
	paymentID := "pay_456"
	good := sign(secret, orderRef, paymentID)

	assert.True(t, verifySignature(secret, orderRef, paymentID, good))

	// Any mismatch fails closed.
	assert.False(t, verifySignature(secret, orderRef, "pay_457", good))
	assert.False(t, verifySignature(secret, "gw_order_124", paymentID, good))
	assert.False(t, verifySignature("other_secret", orderRef, paymentID, good))
	assert.False(t, verifySignature(secret, orderRef, paymentID, good[:len(good)-2]))
	assert.False(t, verifySignature(secret, orderRef, paymentID, ""))
	assert.False(t, verifySignature(secret, "", paymentID, good))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(66500), ToMinorUnits(665))
	assert.Equal(t, int64(19975), ToMinorUnits(199.75))
	assert.Equal(t, int64(10), ToMinorUnits(0.1))
	assert.Equal(t, int64(0), ToMinorUnits(0))
	// Float artifacts round to the nearest paisa.
	assert.Equal(t, int64(1977), ToMinorUnits(19.77))
}
