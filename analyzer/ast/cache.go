package ast

import (
	"go/types"
	"sync"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/abiiranathan/go-translate-lint/analyzer/validator"
)

// printCache provides concurrent-safe caching of printability decisions.
// Method set computation dominates the cost of classifying a type, and the
// same few types appear at most call sites.
type printCache struct {
	mu    sync.Mutex   // typeutil.Map memoizes hashes even on reads
	cache typeutil.Map // types.Type → validator.Printability
}

// newPrintCache initializes an empty printCache.
func newPrintCache() *printCache {
	return &printCache{}
}

// classify returns the cached printability of t, computing it on a miss.
// A nil cache classifies without caching.
func (pc *printCache) classify(t types.Type) validator.Printability {
	if pc == nil {
		return classifyPrintability(t)
	}

	pc.mu.Lock()
	v := pc.cache.At(t)
	pc.mu.Unlock()
	if p, ok := v.(validator.Printability); ok {
		return p
	}

	p := classifyPrintability(t)

	pc.mu.Lock()
	pc.cache.Set(t, p)
	pc.mu.Unlock()

	return p
}

// len returns the number of cached types.
func (pc *printCache) len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.cache.Len()
}
