package contextmap

import "fmt"

// FormatChars renders a character count for captions and status lines.
func FormatChars(n int) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d chars", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fK chars", float64(n)/1_000)
	default:
		return fmt.Sprintf("%.1fM chars", float64(n)/1_000_000)
	}
}
