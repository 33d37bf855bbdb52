package xpath

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// DisableCompileCache disables the compiled-expression cache, forcing
// every Compile call to re-parse. Exposed for tests and for callers
// that compile each expression exactly once.
var DisableCompileCache = false

// CompileCacheMaxEntries bounds the compiled-expression cache. Caching
// is disabled outright when this is <= 0.
var CompileCacheMaxEntries = 256

var (
	cacheOnce  sync.Once
	cache      *lru.Cache
	cacheMutex sync.Mutex
)

// Compile parses expr into an *Expr, consulting the package-level LRU
// cache keyed on the expression text so repeated Select/Evaluate calls
// against the same expression string skip re-parsing.
func Compile(expr string) (*Expr, error) {
	if DisableCompileCache || CompileCacheMaxEntries <= 0 {
		return compileUncached(expr)
	}
	cacheOnce.Do(func() {
		cache = lru.New(CompileCacheMaxEntries)
	})
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	if v, ok := cache.Get(expr); ok {
		return v.(*Expr), nil
	}
	compiled, err := compileUncached(expr)
	if err != nil {
		return nil, err
	}
	cache.Add(expr, compiled)
	return compiled, nil
}

func compileUncached(src string) (*Expr, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{root: root, src: src}, nil
}

// MustCompile is like Compile but panics on a syntax error, for
// expressions known at compile time to be valid.
func MustCompile(expr string) *Expr {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}
