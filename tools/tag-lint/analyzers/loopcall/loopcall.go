// Package loopcall detects per-row tag store writes inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects tag store writes inside loops that should be batched.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects tag store writes inside loops that should be batched into one transaction",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// storeMethods maps TagStore methods to the call that batches them.
var storeMethods = map[string]string{
	"ApplyChanges":     "collect the journal and apply it once",
	"SaveAssociations": "collect the associations and save them once",
	"LogAction":        "log one action per run",
	"Persist":          "persist the whole journal once",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Closures run later; their bodies are not part of the loop.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if hint, ok := storeMethods[sel.Sel.Name]; ok {
				pass.Reportf(call.Pos(),
					"%s called inside loop - %s",
					sel.Sel.Name, hint)
			}

			return true
		})
	})

	return nil, nil
}
