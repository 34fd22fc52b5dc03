package normalize

import (
	"strconv"
	"strings"
)

// SalaryFloor derives an integer lower bound from a salary display string.
// Thousands separators are stripped and the first contiguous run of digits
// wins, so "$180,000 - $250,000" yields 180000 and "$130 - $170/hour" yields
// 130. Unparseable or placeholder values ("Negotiable", "Not listed", "")
// yield 0, which downstream filters treat as "unknown", never as zero pay.
func SalaryFloor(display string) int {
	s := strings.ReplaceAll(display, ",", "")

	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			if err != nil {
				return 0
			}
			return n
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// SalaryRange formats a numeric min/max pair the way providers with
// structured salary data are displayed: "$180,000 - $250,000". A zero max
// renders as an open range: "$180,000+". Both zero renders "Not listed".
func SalaryRange(min, max int) string {
	if min <= 0 {
		return "Not listed"
	}
	if max <= 0 {
		return "$" + groupThousands(min) + "+"
	}
	return "$" + groupThousands(min) + " - $" + groupThousands(max)
}

// groupThousands inserts comma separators into a non-negative integer.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
