package engine

import "fmt"

// assert panics on a broken invariant in goopdebug builds and compiles to nothing otherwise
func assert(cond bool, format string, args ...any) {
	if debugAsserts && !cond {
		panic(fmt.Sprintf("goop invariant violated: "+format, args...))
	}
}
