package pkg

// The simple domain can't express a divisor of at most 0, so only the
// definite case is reported.
func nonPositive(n, d int) int {
	if d <= 0 {
		return n / d
	}
	return 0
}

func zero(n, d int) int {
	if d == 0 {
		return n / d // want `integer division by zero`
	}
	return 0
}
