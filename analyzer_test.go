package errctx_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/errctx/errctx"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), errctx.Analyzer, "a")
}
