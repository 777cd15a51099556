package pkg

func unguarded(x int32, arr []int32) int32 {
	return arr[uint(x)]
}

func negative(x int32, arr []int32) int32 {
	if x >= 0 {
		panic("x must be negative")
	}
	return arr[uint(x)] // want `value lower than 0 is being converted to uint`
}
