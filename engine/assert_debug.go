//go:build goopdebug

package engine

const debugAsserts = true
