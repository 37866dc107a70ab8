// Command errctxvet runs the errctx analyzer standalone, with the usual
// go/analysis flag surface including -fix.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/errctx/errctx"
)

func main() {
	singlechecker.Main(errctx.Analyzer)
}
