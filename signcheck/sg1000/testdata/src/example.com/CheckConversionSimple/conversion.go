package pkg

// The simple domain can't express "at least 0".
func nonNegative(x int32, arr []int32) int32 {
	if x < 0 {
		panic("x must not be negative")
	}
	return arr[uint(x)] // want `value being converted to uint may be lower than 0`
}

func nestedGuards(x, y int32) int32 {
	arr := [4]int32{1, 2, 3, 4}
	if x < 0 {
		if y < 0 {
			idx := x * y
			return arr[uint(idx)]
		}
	}
	return 0
}

func negative(x int32, arr []int32) int32 {
	if x < 0 {
		return arr[uint(x)] // want `value lower than 0 is being converted to uint`
	}
	return 0
}
