// Package version reports the version of signcheck binaries.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version is set for releases, either here or with -ldflags "-X".
var Version = "devel"

// version returns a version descriptor and reports whether the
// version is a known release.
func version() (string, bool) {
	if Version != "devel" {
		return Version, true
	}
	v, ok := buildInfoVersion()
	if ok {
		return v, false
	}
	return "devel", false
}

func buildInfoVersion() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	if info.Main.Version == "(devel)" || info.Main.Version == "" {
		return "", false
	}
	return info.Main.Version, true
}

// Print writes the name and version of the program to w.
func Print(w io.Writer, name string) {
	v, release := version()

	if release {
		fmt.Fprintf(w, "%s %s\n", name, v)
	} else if v == "devel" {
		fmt.Fprintf(w, "%s (no version)\n", name)
	} else {
		fmt.Fprintf(w, "%s (devel, %s)\n", name, v)
	}
}

// Verbose writes the version, the Go version and the versions of all
// dependencies to w.
func Verbose(w io.Writer, name string) {
	Print(w, name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compiled with Go version:", runtime.Version())
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintln(w, "Main module:")
		printModule(w, &info.Main)
		fmt.Fprintln(w, "Dependencies:")
		for _, dep := range info.Deps {
			printModule(w, dep)
		}
	} else {
		fmt.Fprintln(w, "Built without Go modules")
	}
}

func printModule(w io.Writer, m *debug.Module) {
	fmt.Fprintf(w, "\t%s", m.Path)
	if m.Version != "(devel)" {
		fmt.Fprintf(w, "@%s", m.Version)
	}
	if m.Sum != "" {
		fmt.Fprintf(w, " (sum: %s)", m.Sum)
	}
	if m.Replace != nil {
		fmt.Fprintf(w, " (replace: %s)", m.Replace.Path)
	}
	fmt.Fprintln(w)
}
