package pricing

import "fmt"

// FormatCents renders integer cents as a fixed two-decimal string, the form
// every outbound amount is reported in.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
