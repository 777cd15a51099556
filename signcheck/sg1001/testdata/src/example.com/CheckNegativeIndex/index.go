package pkg

func guarded(s []int, i int) int {
	if i < 0 {
		return s[i] // want `index is lower than 0`
	}
	return s[i]
}

func unguarded(s []int, i int) int {
	return s[i] // want `index may be lower than 0`
}

func array(i int) int {
	arr := [3]int{1, 2, 3}
	if i <= 0 {
		return arr[i] // want `index may be lower than 0`
	}
	return arr[i]
}

func str(s string, i int) byte {
	if i < 0 {
		return s[i] // want `index is lower than 0`
	}
	return 0
}

func slicing(s []int, lo, hi int) []int {
	if lo >= 0 && hi < 0 {
		return s[lo:hi] // want `high slice bound is lower than 0`
	}
	return nil
}

func fullSlice(s []int, max int) []int {
	if max < 0 {
		return s[0:0:max] // want `max slice bound is lower than 0`
	}
	return nil
}

func lowBound(s []int, lo int) []int {
	if lo > 0 {
		return s[lo:]
	}
	return s[lo:] // want `low slice bound may be lower than 0`
}

func unsignedIndex(s []int, i uint) int {
	return s[i]
}

func constantIndex(s []int) int {
	return s[1]
}
