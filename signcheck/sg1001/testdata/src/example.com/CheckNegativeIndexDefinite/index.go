package pkg

func guarded(s []int, i int) int {
	if i < 0 {
		return s[i] // want `index is lower than 0`
	}
	return s[i]
}

func unguarded(s []int, i int) int {
	return s[i]
}
