package terrain

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/goop/core"
)

// Class is the read-only classification of one grid cell
type Class uint8

const (
	Floor Class = iota
	Wall
	Pit
	FaceWall
	Occupied
	classCount
)

var classNames = [classCount]string{"floor", "wall", "pit", "face_wall", "occupied"}

func (c Class) String() string {
	if c >= classCount {
		return fmt.Sprintf("class(%d)", uint8(c))
	}
	return classNames[c]
}

// ParseClass resolves a class name as written in substance configs
func ParseClass(s string) (Class, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range classNames {
		if n == s {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("unknown terrain class %q", s)
}

// ClassSet is a bitmask of terrain classes
type ClassSet uint8

// SetOf builds a ClassSet from classes
func SetOf(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s |= 1 << c
	}
	return s
}

// Has reports membership of c
func (s ClassSet) Has(c Class) bool {
	return s&(1<<c) != 0
}

// Oracle answers per-cell terrain queries, read-only for the engine
type Oracle interface {
	// IsEligible reports whether the cell may bear any substance at all
	IsEligible(p core.Point) bool
	// Classify returns the terrain class, out-of-bounds reads as Wall
	Classify(p core.Point) Class
}

// Map is a dense Oracle backed by per-cell classes and a "no substance" mask
type Map struct {
	dims    core.Dims
	classes []Class
	blocked []bool
}

// NewMap creates an all-floor map
func NewMap(dims core.Dims) *Map {
	return &Map{
		dims:    dims,
		classes: make([]Class, dims.Area()),
		blocked: make([]bool, dims.Area()),
	}
}

// Dims returns the map bounds
func (m *Map) Dims() core.Dims { return m.dims }

// Set assigns a class, out-of-bounds writes are ignored
func (m *Map) Set(p core.Point, c Class) {
	if !m.dims.Contains(p) {
		return
	}
	m.classes[m.dims.Index(p)] = c
}

// SetNoSubstance flags a cell as never bearing substance regardless of class
func (m *Map) SetNoSubstance(p core.Point, blocked bool) {
	if !m.dims.Contains(p) {
		return
	}
	m.blocked[m.dims.Index(p)] = blocked
}

// Fill assigns c to every cell of the rectangle [x0,x1) x [y0,y1)
func (m *Map) Fill(x0, y0, x1, y1 int, c Class) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(core.Point{X: x, Y: y}, c)
		}
	}
}

func (m *Map) IsEligible(p core.Point) bool {
	if !m.dims.Contains(p) {
		return false
	}
	i := m.dims.Index(p)
	if m.blocked[i] {
		return false
	}
	switch m.classes[i] {
	case Wall, FaceWall:
		return false
	}
	return true
}

func (m *Map) Classify(p core.Point) Class {
	if !m.dims.Contains(p) {
		return Wall
	}
	return m.classes[m.dims.Index(p)]
}

// Count returns the number of cells of class c
func (m *Map) Count(c Class) int {
	n := 0
	for _, v := range m.classes {
		if v == c {
			n++
		}
	}
	return n
}
