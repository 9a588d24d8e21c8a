package ast

import (
	"cmp"
	goast "go/ast"
	"go/token"
	"go/types"
	"runtime"
	"slices"
	"sync"
)

// CheckFiles analyzes every translation call in the files of one
// type-checked package. Findings are returned in source order.
func CheckFiles(fset *token.FileSet, files []*goast.File, info *types.Info, config AnalysisConfig) []Finding {
	return checkFiles(fset, files, info, config, newPrintCache())
}

func checkFiles(
	fset *token.FileSet,
	files []*goast.File,
	info *types.Info,
	config AnalysisConfig,
	printing *printCache,
) []Finding {
	targets := newTargetSet(config.Functions)
	if targets.empty() || len(files) == 0 {
		return nil
	}

	env := &checkEnv{
		info:     info,
		fset:     fset,
		facts:    collectLiteralFacts(files, info, targets),
		targets:  targets,
		policy:   config.Policy,
		printing: printing,
	}

	scopes := collectFuncScopes(files, env)

	var findings []Finding
	for _, scope := range scopes {
		findings = append(findings, scope.Findings...)
	}

	slices.SortFunc(findings, func(a, b Finding) int {
		return cmp.Compare(a.Node.Pos(), b.Node.Pos())
	})
	return findings
}

// collectFuncScopes collects translation calls from all function and
// top-level variable declaration scopes using concurrent processing.
//
// Algorithm:
// 1. Identify all nodes that represent distinct scopes
// 2. Process nodes concurrently, one chunk per worker
// 3. Aggregate results from all workers
func collectFuncScopes(files []*goast.File, env *checkEnv) []FuncScope {
	funcNodes := identifyFuncNodes(files)

	if len(funcNodes) == 0 {
		return nil
	}

	return processNodesConcurrently(funcNodes, env)
}

// identifyFuncNodes returns the nodes representing distinct scopes: function
// declarations, function literals, and top-level var declarations.
func identifyFuncNodes(files []*goast.File) []funcWorkUnit {
	// Estimate capacity: ~8 functions per file is typical
	funcNodes := make([]funcWorkUnit, 0, len(files)*8)

	for _, f := range files {
		for _, decl := range f.Decls {
			if gen, ok := decl.(*goast.GenDecl); ok && gen.Tok == token.VAR {
				funcNodes = append(funcNodes, funcWorkUnit{node: gen})
			}
		}

		goast.Inspect(f, func(n goast.Node) bool {
			switch node := n.(type) {
			case *goast.FuncDecl, *goast.FuncLit:
				funcNodes = append(funcNodes, funcWorkUnit{node: node})
			}
			return true
		})
	}

	return funcNodes
}

// processNodesConcurrently distributes work units across workers and
// aggregates their results. Workers share only read-only state and the
// printability cache.
func processNodesConcurrently(funcNodes []funcWorkUnit, env *checkEnv) []FuncScope {
	numWorkers := max(runtime.NumCPU(), 1)
	chunkSize := (len(funcNodes) + numWorkers - 1) / numWorkers

	resultChan := make(chan []FuncScope, numWorkers)
	var wg sync.WaitGroup

	for w := range numWorkers {
		start := w * chunkSize
		if start >= len(funcNodes) {
			break
		}
		end := min(start+chunkSize, len(funcNodes))
		chunk := funcNodes[start:end]

		wg.Go(func() {
			resultChan <- processChunk(chunk, env)
		})
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var allScopes []FuncScope
	for scopes := range resultChan {
		allScopes = append(allScopes, scopes...)
	}

	return allScopes
}

// processChunk processes one chunk of work units.
func processChunk(chunk []funcWorkUnit, env *checkEnv) []FuncScope {
	localScopes := make([]FuncScope, 0, len(chunk)/2)

	for _, unit := range chunk {
		scope := processFunc(unit.node, env)

		// Only keep scopes that found something
		if len(scope.Findings) > 0 {
			localScopes = append(localScopes, scope)
		}
	}

	return localScopes
}
