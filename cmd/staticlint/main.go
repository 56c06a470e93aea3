package main

import (
	"go/ast"
	"go/types"
	"strings"

	"github.com/MakeNowJust/enumcase"
	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/kisielk/errcheck/errcheck"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
)

func main() {
	// staticcheck
	extraChecks := map[string]bool{
		"S1000": true,
		"S1001": true,
		"S1002": true,
		"S1005": true,
	}

	var checks []*analysis.Analyzer
	for _, v := range staticcheck.Analyzers {
		if strings.HasPrefix(v.Analyzer.Name, "SA") {
			checks = append(checks, v.Analyzer)
		}
	}
	for _, v := range simple.Analyzers {
		if extraChecks[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}

	// analysis/passes
	checks = append(checks,
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		copylock.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
	)

	// сторонние анализаторы. enumcase проверяет полноту switch по entity.Action
	checks = append(checks,
		bodyclose.Analyzer,
		enumcase.Analyzer,
		errcheck.Analyzer,
		ineffassign.Analyzer,
	)

	checks = append(checks, StdoutPrintAnalyzer)

	multichecker.Main(
		checks...,
	)
}

// StdoutPrintAnalyzer запрещает fmt.Print* вне package main.
// Весь вывод должен идти через переданный io.Writer.
var StdoutPrintAnalyzer = &analysis.Analyzer{
	Name: "stdoutprint",
	Doc:  "check for fmt.Print, fmt.Printf and fmt.Println outside of package main",
	Run:  run,
}

var stdoutFuncs = map[string]bool{
	"Print":   true,
	"Printf":  true,
	"Println": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() == "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.File(file.Pos()).Name(), "_test.go") {
			continue
		}
		ast.Inspect(file, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !stdoutFuncs[sel.Sel.Name] {
				return true
			}
			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}
			if pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName); ok && pkgName.Imported().Path() == "fmt" {
				pass.Reportf(call.Pos(), "fmt.%s writes to stdout, use an io.Writer", sel.Sel.Name)
			}
			return true
		})
	}
	return nil, nil
}
