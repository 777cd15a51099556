package pkg

func div(n, d int) int {
	if d == 0 {
		return n / d // want `integer division by zero`
	}
	return 0
}

func nonPositive(n, d int) int {
	if d <= 0 {
		return n / d
	}
	return 0
}
