package pkg

func negative(x int32) uint {
	if x < 0 {
		return uint(x)
	}
	return 0
}
