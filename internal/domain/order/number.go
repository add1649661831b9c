package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateNumber builds an order number from a millisecond timestamp and a
// random three-digit tie-breaker. Callers must verify uniqueness against
// the repository and regenerate on collision.
func GenerateNumber(now time.Time, intn func(int) int) string {
	return fmt.Sprintf("ORD%d%03d", now.UnixMilli(), intn(1000))
}

// DefaultIntn is the production random source for GenerateNumber.
func DefaultIntn(n int) int {
	return rand.Intn(n)
}
