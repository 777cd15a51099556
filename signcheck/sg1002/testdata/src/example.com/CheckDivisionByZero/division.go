package pkg

func div(n, d int) int {
	if d == 0 {
		return n / d // want `integer division by zero`
	}
	return n / d
}

func rem(n, d int) int {
	if d != 0 {
		return n % d
	}
	return n % d // want `integer remainder by zero`
}

func unknown(n, d int) int {
	return n / d
}

func nonPositive(n, d int) int {
	if d <= 0 {
		return n / d // want `divisor of integer division may be 0`
	}
	return 0
}

func zeroed(n int) int {
	var d int
	return n / d // want `integer division by zero`
}

func floats(n, d float64) float64 {
	if d == 0 {
		return n / d
	}
	return 0
}

func nonNegative(n, d int) int {
	if d < 0 {
		return 0
	}
	return n % d // want `divisor of integer remainder may be 0`
}

func positive(n, d int) int {
	if d > 0 {
		return n / d
	}
	return 0
}
