package lexer

import "strconv"

func itoa(n int) string { return strconv.Itoa(n) }

func parseBaseInt(digits string, base int) float64 {
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0
	}
	return float64(v)
}

func parseFloat(lexeme string) float64 {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0
	}
	return v
}
