// Code generated by hand. DO NOT EDIT.

package pkg

func generatedConversion(x int32) uint {
	return uint(x)
}
