package ast

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadMode is everything the checks need: syntax plus full type information.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedTypesSizes |
	packages.NeedImports

// selectPackages drops packages that should not be analyzed and collects
// non-import-related errors of the rest into result.
//
// Performance: Skips vendor and generated code directories to reduce processing time.
func selectPackages(pkgs []*packages.Package, config AnalysisConfig, result *AnalysisResult) []*packages.Package {
	selected := make([]*packages.Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		if shouldSkipPackage(pkg.PkgPath) || isExcluded(pkg.PkgPath, config.ExcludePackages) {
			continue
		}

		// Collect non-import errors
		for _, e := range pkg.Errors {
			if !isImportRelatedError(e.Msg) {
				result.Errors = append(result.Errors, fmt.Sprintf("type error: %v", e.Msg))
			}
		}

		if pkg.TypesInfo == nil || len(pkg.Syntax) == 0 {
			continue
		}
		selected = append(selected, pkg)
	}

	return selected
}

// shouldSkipPackage determines if a package should be skipped for performance reasons.
// Skips vendor directories and common generated code patterns.
func shouldSkipPackage(pkgPath string) bool {
	lower := strings.ToLower(pkgPath)

	// Skip vendor directories
	if strings.Contains(lower, "/vendor/") || strings.Contains(lower, "\\vendor\\") {
		return true
	}

	// Skip generated code directories
	if strings.Contains(lower, "/generated/") || strings.Contains(lower, "\\generated\\") {
		return true
	}

	// Skip common generated package suffixes
	if strings.HasSuffix(lower, "_generated") || strings.HasSuffix(lower, ".pb") {
		return true
	}

	return false
}

// isExcluded matches a package path against the configured exclude
// patterns. A pattern ending in "/..." also excludes every subpackage.
func isExcluded(pkgPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if prefix, ok := strings.CutSuffix(pattern, "/..."); ok {
			if pkgPath == prefix || strings.HasPrefix(pkgPath, prefix+"/") {
				return true
			}
			continue
		}
		if ok, err := path.Match(pattern, pkgPath); err == nil && ok {
			return true
		}
	}
	return false
}

// isImportRelatedError checks if an error message is about import resolution.
// These errors are typically noise and not relevant to translation analysis.
func isImportRelatedError(msg string) bool {
	lower := strings.ToLower(msg)
	importPhrases := []string{
		"could not import",
		"can't find import",
		"cannot find package",
		"no required module provides",
	}

	for _, phrase := range importPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
