package ir

import (
	"bytes"
	"fmt"
	"go/types"
	"io"
)

// WriteFunction writes a human-readable listing of fn to w.
func WriteFunction(w io.Writer, fn *Function) {
	fmt.Fprintf(w, "# Name: %s\n", fn.Name)
	if len(fn.Vars) > 0 {
		fmt.Fprintf(w, "# Vars:\n")
		for _, v := range fn.Vars {
			fmt.Fprintf(w, "#   %s %s\n", v, types.TypeString(v.Type, nil))
		}
	}
	if len(fn.Blocks) == 0 {
		fmt.Fprintf(w, "\t(external)\n")
		return
	}
	for _, b := range fn.Blocks {
		if b.Comment != "" {
			fmt.Fprintf(w, "%s: # %s\n", b, b.Comment)
		} else {
			fmt.Fprintf(w, "%s:\n", b)
		}
		for _, stmt := range b.Stmts {
			fmt.Fprintf(w, "\t%s\n", stmt)
		}
		if b.Term != nil {
			fmt.Fprintf(w, "\t%s\n", b.Term)
		}
	}
}

// Listing returns the output of WriteFunction as a string.
func Listing(fn *Function) string {
	var buf bytes.Buffer
	WriteFunction(&buf, fn)
	return buf.String()
}
