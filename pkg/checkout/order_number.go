package checkout

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const (
	orderNumberMinSuffix = 1000
	orderNumberMaxSuffix = 9999
)

// OrderNumberPattern matches every number NewOrderNumber produces.
var OrderNumberPattern = regexp.MustCompile(`^ORD-\d{6}-\d{4}$`)

// OrderNumberFunc lets services swap the generator in tests.
type OrderNumberFunc func(now time.Time) (string, error)

// NewOrderNumber formats ORD-<last 6 digits of epoch millis>-<1000..9999>.
// Collisions are possible; the orders.order_number unique constraint decides.
func NewOrderNumber(now time.Time) (string, error) {
	span := big.NewInt(orderNumberMaxSuffix - orderNumberMinSuffix + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("order number suffix: %w", err)
	}
	return formatOrderNumber(now, int(n.Int64())+orderNumberMinSuffix), nil
}

func formatOrderNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("ORD-%06d-%04d", now.UnixMilli()%1_000_000, suffix)
}
