package pkg

// Options override signcheck.conf: the simple domain can't show that x
// is at least 0, and possible errors are reported.
func nonNegative(x int32) uint {
	if x < 0 {
		return 0
	}
	return uint(x) // want `value being converted to uint may be lower than 0`
}

func negative(x int32) uint {
	if x < 0 {
		return uint(x) // want `value lower than 0 is being converted to uint`
	}
	return 0
}
