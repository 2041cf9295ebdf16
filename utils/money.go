package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBDT formats an amount in minor units (cents) as a string like
// "৳1,234.50". Uses comma as thousands separator.
func FormatBDT(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	taka := amount / 100
	cents := amount % 100

	s := strconv.FormatInt(taka, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + symbol + cents
	b.Grow(len(s) + len(s)/3 + 8)
	if neg {
		b.WriteString("-৳")
	} else {
		b.WriteString("৳")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	b.WriteString(fmt.Sprintf(".%02d", cents))
	return b.String()
}
