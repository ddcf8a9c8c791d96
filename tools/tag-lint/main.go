// tag-lint is a custom static analyzer for tag-core registration code.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/tag-core/tools/tag-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
