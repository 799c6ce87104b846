package polydec

import (
	"errors"
	"fmt"
)

// Array is a named attribute array with Components values per tuple.
// Point attributes hold one tuple per point, cell attributes one per line.
type Array struct {
	Name       string
	Components int
	Data       []float64
}

// Tuples returns the number of tuples in the array.
func (a Array) Tuples() int {
	if a.Components <= 0 {
		return 0
	}
	return len(a.Data) / a.Components
}

// Tuple returns tuple i. The slice aliases Data.
func (a Array) Tuple(i int) []float64 {
	return a.Data[i*a.Components : (i+1)*a.Components]
}

// Attributes is an ordered set of attribute arrays.
type Attributes []Array

// Get returns the array with the given name.
func (as Attributes) Get(name string) (Array, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Array{}, false
}

// validate checks every array holds exactly n tuples.
func (as Attributes) validate(kind string, n int) error {
	var errs []error
	seen := make(map[string]bool, len(as))
	for _, a := range as {
		switch {
		case a.Components <= 0:
			errs = append(errs, fmt.Errorf("%w: %s array %q has %d components", ErrInvalidAttribute, kind, a.Name, a.Components))
		case len(a.Data) != n*a.Components:
			errs = append(errs, fmt.Errorf("%w: %s array %q has %d values, want %d (%d tuples x %d components)",
				ErrInvalidAttribute, kind, a.Name, len(a.Data), n*a.Components, n, a.Components))
		}
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate %s array %q", ErrInvalidAttribute, kind, a.Name))
		}
		seen[a.Name] = true
	}
	return errors.Join(errs...)
}

// Mesh is a set of polylines over a shared point array.
type Mesh struct {
	Points *Points
	Lines  *Lines

	// PointData holds per-point attributes carried to surviving points.
	PointData Attributes

	// CellData holds per-line attributes carried to output lines.
	CellData Attributes
}

// NumPoints returns the number of points, 0 for a mesh without points.
func (m *Mesh) NumPoints() int {
	if m == nil || m.Points == nil {
		return 0
	}
	return m.Points.Len()
}

// NumLines returns the number of lines, 0 for a mesh without lines.
func (m *Mesh) NumLines() int {
	if m == nil || m.Lines == nil {
		return 0
	}
	return m.Lines.Len()
}

// validate checks everything Decimate needs apart from connectivity, which
// the chain extractor validates while partitioning.
func (m *Mesh) validate() error {
	if m == nil {
		return ErrNilMesh
	}
	if m.Points == nil {
		return fmt.Errorf("%w: mesh has no points", ErrInvalidPoints)
	}
	if m.Lines == nil {
		return fmt.Errorf("%w: mesh has no lines", ErrMalformedConnectivity)
	}
	return errors.Join(
		m.Points.validate(),
		m.PointData.validate("point", m.Points.Len()),
		m.CellData.validate("cell", m.Lines.Len()),
	)
}
