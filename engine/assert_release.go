//go:build !goopdebug

package engine

const debugAsserts = false
