// Package directives defines an analyzer that extracts signcheck directives from comments.
//
// A directive is a comment of the form '//signcheck:<command> [arguments...]'. The following commands exist:
//
//	//signcheck:ignore SG1000[,SG1001...] reason
//	//signcheck:file-ignore SG1000[,SG1001...] reason
//
// An ignore directive suppresses the listed checks on the line of the node that the comment is attached to. A
// file-ignore directive suppresses them in the entire file.
package directives

import (
	"go/ast"
	"go/token"
	"reflect"
	"strings"

	"golang.org/x/tools/go/analysis"
)

const prefix = "//signcheck:"

type Directive struct {
	Command   string
	Arguments []string
	Directive *ast.Comment
	Node      ast.Node
}

// Checks returns the check names listed by an ignore or file-ignore directive.
func (dir Directive) Checks() []string {
	if len(dir.Arguments) == 0 {
		return nil
	}
	return strings.Split(dir.Arguments[0], ",")
}

// Matches reports whether dir suppresses diagnostics of the check named check at position pos.
func (dir Directive) Matches(fset *token.FileSet, check string, pos token.Position) bool {
	var matched bool
	for _, c := range dir.Checks() {
		if c == check {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	npos := fset.Position(dir.Node.Pos())
	switch dir.Command {
	case "ignore":
		return npos.Filename == pos.Filename && npos.Line == pos.Line
	case "file-ignore":
		return npos.Filename == pos.Filename
	default:
		return false
	}
}

func parseDirective(s string) (cmd string, args []string) {
	if !strings.HasPrefix(s, prefix) {
		return "", nil
	}
	fields := strings.Fields(strings.TrimPrefix(s, prefix))
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

func ParseDirectives(files []*ast.File, fset *token.FileSet) []Directive {
	var dirs []Directive
	for _, f := range files {
		found := false
		for _, cg := range f.Comments {
			for _, c := range cg.List {
				if strings.HasPrefix(c.Text, prefix) {
					found = true
				}
			}
		}
		if !found {
			continue
		}
		cm := ast.NewCommentMap(fset, f, f.Comments)
		for node, cgs := range cm {
			for _, cg := range cgs {
				for _, c := range cg.List {
					cmd, args := parseDirective(c.Text)
					if cmd == "" {
						continue
					}
					d := Directive{
						Command:   cmd,
						Arguments: args,
						Directive: c,
						Node:      node,
					}
					if cmd == "file-ignore" {
						// File-level directives apply to the file, no
						// matter which node they're attached to.
						d.Node = f
					}
					dirs = append(dirs, d)
				}
			}
		}
	}
	return dirs
}

var Analyzer = &analysis.Analyzer{
	Name: "directives",
	Doc:  "extracts signcheck directives",
	Run: func(pass *analysis.Pass) (interface{}, error) {
		return ParseDirectives(pass.Files, pass.Fset), nil
	},
	RunDespiteErrors: true,
	ResultType:       reflect.TypeOf([]Directive{}),
}
