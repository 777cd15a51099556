package pkg

func unguarded(x int32, arr []int32) int32 {
	return arr[uint(x)] // want `value being converted to uint may be lower than 0`
}

func negative(x int32, arr []int32) int32 {
	if x >= 0 {
		panic("x must be negative")
	}
	return arr[uint(x)] // want `value lower than 0 is being converted to uint`
}

func nonNegative(x int32, arr []int32) int32 {
	if x < 0 {
		panic("x must not be negative")
	}
	return arr[uint(x)]
}

func product(x, y int32) int32 {
	arr := [4]int32{1, 2, 3, 4}
	idx := x * y
	return arr[uint(idx)] // want `value being converted to uint may be lower than 0`
}

func nestedGuards(x, y int32) int32 {
	arr := [4]int32{1, 2, 3, 4}
	if x <= 0 {
		if y <= 0 {
			idx := x * y
			return arr[uint(idx)]
		}
	}
	return 0
}

func countUp(x int32, arr []int32) int32 {
	for x < 0 {
		x += 4
	}
	return arr[uint(x)]
}

func countDown(x int32) int32 {
	arr := make([]int32, 20)
	z, y := int32(2), int32(2)
	for x < 0 {
		x++
		y = z
		z--
	}
	return arr[uint(y)] // want `value being converted to uint may be lower than 0`
}

func copied(x int32, arr []int32) int32 {
	y := x
	if y < 0 {
		return arr[uint(x)] // want `value lower than 0 is being converted to uint`
	}
	return arr[uint(x)]
}

func constant() uint64 {
	x := -1
	return uint64(x) // want `value lower than 0 is being converted to uint64`
}

func positive(x int) uint {
	if x > 0 {
		return uint(x)
	}
	return 0
}

func unsigned(x uint8) uint {
	return uint(x)
}

func called(f func() int) uint {
	x := f()
	return uint(x) // want `value being converted to uint may be lower than 0`
}

func generic[T ~int | ~int64](x T) uint {
	if x < 0 {
		return uint(x) // want `value lower than 0 is being converted to uint`
	}
	return 0
}

func closure() func(int) uint {
	return func(x int) uint {
		if x < 0 {
			return uint(x) // want `value lower than 0 is being converted to uint`
		}
		return uint(x)
	}
}

func ignored(x int32) uint {
	//signcheck:ignore SG1000 validated by the caller
	return uint(x)
}
