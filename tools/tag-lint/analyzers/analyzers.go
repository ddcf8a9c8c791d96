// Package analyzers provides all custom static analyzers for tag-core.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/tag-core/tools/tag-lint/analyzers/loopcall"
	"github.com/ersonp/tag-core/tools/tag-lint/analyzers/tagname"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		tagname.Analyzer,
	}
}
