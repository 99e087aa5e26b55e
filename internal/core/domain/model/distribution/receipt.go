package distribution

import (
	"fmt"
	"time"
)

// NewReceiptNumber formats a distribution receipt number from a timestamp and
// a three-digit random suffix. Collisions are possible within one second; the
// persistence layer enforces uniqueness and callers retry on conflict.
func NewReceiptNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("RCP%s%03d", now.Format("20060102150405"), suffix%1000)
}
