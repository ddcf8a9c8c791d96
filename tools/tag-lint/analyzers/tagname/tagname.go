// Package tagname reports literal tag names that the registry would reject.
//
// TagService.Tag logs and returns an invalid builder for a bad name, so a typo
// in a hard-coded tag silently registers nothing. This analyzer catches those
// literals at build time, along with literal keys passed to ParseKey that can
// never parse.
package tagname

import (
	"go/ast"
	"go/token"
	"go/types"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports invalid literal tag names.
var Analyzer = &analysis.Analyzer{
	Name:     "tagname",
	Doc:      "reports string literals passed as tag names that contain characters outside [A-Za-z0-9:_/]",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var validTagName = regexp.MustCompile(`^[A-Za-z0-9:_/]+$`)

// tagArgs maps a function or method name to the index of its first tag
// name argument. Every argument from that index on is checked.
var tagArgs = map[string]int{
	"Tag":             1, // (*TagService).Tag(kind, names...)
	"ValidateTagName": 0,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		name := calleeName(pass, call)
		if name == "ParseKey" {
			checkKey(pass, call)
			return
		}

		first, ok := tagArgs[name]
		if !ok {
			return
		}

		for _, arg := range call.Args[min(first, len(call.Args)):] {
			lit, ok := arg.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}

			value, err := strconv.Unquote(lit.Value)
			if err != nil {
				continue
			}

			switch {
			case value == "":
				pass.Reportf(lit.Pos(), "empty tag name")
			case !validTagName.MatchString(value):
				pass.Reportf(lit.Pos(), "invalid tag name %q: only letters, digits, ':', '_' and '/' are allowed", value)
			}
		}
	})

	return nil, nil
}

// calleeName returns the name of the called function when it is declared in
// a package named "entities" or is a method on a type named "TagService".
func calleeName(pass *analysis.Pass, call *ast.CallExpr) string {
	var ident *ast.Ident
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		ident = fn
	case *ast.SelectorExpr:
		ident = fn.Sel
	default:
		return ""
	}

	obj, ok := pass.TypesInfo.Uses[ident].(*types.Func)
	if !ok {
		return ""
	}

	sig, _ := obj.Type().(*types.Signature)
	if sig != nil && sig.Recv() != nil {
		if recvName(sig.Recv().Type()) == "TagService" {
			return obj.Name()
		}
		return ""
	}

	if obj.Pkg() != nil && obj.Pkg().Name() == "entities" {
		return obj.Name()
	}
	return ""
}

func recvName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

func checkKey(pass *analysis.Pass, call *ast.CallExpr) {
	if len(call.Args) != 1 {
		return
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return
	}

	id, meta, found := strings.Cut(strings.TrimSpace(value), "@")
	switch {
	case id == "":
		pass.Reportf(lit.Pos(), "key %q has no id", value)
	case found && meta != "*":
		if n, err := strconv.Atoi(meta); err != nil || n < 0 {
			pass.Reportf(lit.Pos(), "key %q has invalid meta %q", value, meta)
		}
	}
}
