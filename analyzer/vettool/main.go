// The vettool command runs the transcheck analyzer standalone or under
// go vet:
//
//	go vet -vettool=$(which vettool) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/abiiranathan/go-translate-lint/analyzer/passes/transcheck"
)

func main() { singlechecker.Main(transcheck.Analyzer) }
