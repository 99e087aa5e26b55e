package consolidation

import (
	"fmt"
	"time"
)

// NewTrackingNumber formats a consolidated tracking number as
// CONS-YYYYMMDD-NNNN, where NNNN is the zero-padded daily sequence supplied
// by the repository. The number is independent of member tracking numbers.
func NewTrackingNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("CONS-%s-%04d", day.Format("20060102"), sequence)
}
