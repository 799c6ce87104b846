package polydec

import (
	"fmt"
	"math"

	"github.com/gogpu/polydec/internal/buffer"
	"github.com/gogpu/polydec/internal/geom"
)

// Vec3 is a point position. Two-dimensional data uses Z = 0.
type Vec3 = geom.Vec3

// Precision selects how point coordinates are stored.
type Precision int

const (
	// PrecisionDefault keeps the precision of the input points.
	// As a storage precision it means double.
	PrecisionDefault Precision = iota

	// PrecisionSingle stores coordinates as float32.
	PrecisionSingle

	// PrecisionDouble stores coordinates as float64.
	PrecisionDouble
)

// String returns the precision name.
func (p Precision) String() string {
	switch p {
	case PrecisionDefault:
		return "default"
	case PrecisionSingle:
		return "single"
	case PrecisionDouble:
		return "double"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision parses a precision name. "match" and "" are accepted as
// PrecisionDefault, "float" and "float32" as single, "float64" as double.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "", "default", "match":
		return PrecisionDefault, nil
	case "single", "float", "float32":
		return PrecisionSingle, nil
	case "double", "float64":
		return PrecisionDouble, nil
	default:
		return PrecisionDefault, fmt.Errorf("polydec: unknown precision %q", s)
	}
}

// resolve returns the storage precision for output given the input's.
func (p Precision) resolve(input Precision) Precision {
	switch p {
	case PrecisionSingle, PrecisionDouble:
		return p
	default:
		if input == PrecisionSingle {
			return PrecisionSingle
		}
		return PrecisionDouble
	}
}

// Points is an array of 3D positions stored as packed xyz triples in either
// float32 or float64.
//
// Points created by NewPoints or returned from Decimate own their storage.
// Points created by WrapFloat32 or WrapFloat64 borrow the caller's slice and
// never write into it.
type Points struct {
	precision Precision
	f32       *buffer.Buffer[float32]
	f64       *buffer.Buffer[float64]
}

// NewPoints creates an empty owned point array with room for capacity points.
func NewPoints(precision Precision, capacity int) *Points {
	p := &Points{precision: precision.resolve(PrecisionDouble)}
	capacity = max(capacity, 0)
	if p.precision == PrecisionSingle {
		p.f32, _ = buffer.New[float32](0)
		_ = p.f32.Reserve(3 * capacity)
	} else {
		p.f64, _ = buffer.New[float64](0)
		_ = p.f64.Reserve(3 * capacity)
	}
	return p
}

// WrapFloat64 borrows packed xyz coordinates without copying.
func WrapFloat64(xyz []float64) (*Points, error) {
	if len(xyz)%3 != 0 {
		return nil, fmt.Errorf("%w: %d coordinates is not a multiple of 3", ErrInvalidPoints, len(xyz))
	}
	return &Points{precision: PrecisionDouble, f64: buffer.Borrow(xyz)}, nil
}

// WrapFloat32 borrows packed xyz coordinates without copying.
func WrapFloat32(xyz []float32) (*Points, error) {
	if len(xyz)%3 != 0 {
		return nil, fmt.Errorf("%w: %d coordinates is not a multiple of 3", ErrInvalidPoints, len(xyz))
	}
	return &Points{precision: PrecisionSingle, f32: buffer.Borrow(xyz)}, nil
}

// PointsFromVec3 copies pts into an owned double-precision array.
func PointsFromVec3(pts []Vec3) *Points {
	p := NewPoints(PrecisionDouble, len(pts))
	for _, v := range pts {
		_ = p.Append(v)
	}
	return p
}

// Len returns the number of points.
func (p *Points) Len() int {
	if p.precision == PrecisionSingle {
		return p.f32.Len() / 3
	}
	return p.f64.Len() / 3
}

// Precision returns the storage precision, single or double.
func (p *Points) Precision() Precision {
	return p.precision
}

// At returns point i.
func (p *Points) At(i int) Vec3 {
	if p.precision == PrecisionSingle {
		d := p.f32.Data()[3*i : 3*i+3]
		return Vec3{X: float64(d[0]), Y: float64(d[1]), Z: float64(d[2])}
	}
	d := p.f64.Data()[3*i : 3*i+3]
	return Vec3{X: d[0], Y: d[1], Z: d[2]}
}

// Append adds a point, converting to the storage precision.
func (p *Points) Append(v Vec3) error {
	if p.precision == PrecisionSingle {
		return p.f32.Append(float32(v.X), float32(v.Y), float32(v.Z))
	}
	return p.f64.Append(v.X, v.Y, v.Z)
}

// Float64s returns the packed coordinates of a double-precision array,
// nil otherwise.
func (p *Points) Float64s() []float64 {
	if p.f64 == nil {
		return nil
	}
	return p.f64.Data()
}

// Float32s returns the packed coordinates of a single-precision array,
// nil otherwise.
func (p *Points) Float32s() []float32 {
	if p.f32 == nil {
		return nil
	}
	return p.f32.Data()
}

// Owned reports whether the array owns its storage.
func (p *Points) Owned() bool {
	if p.precision == PrecisionSingle {
		return p.f32.Owned()
	}
	return p.f64.Owned()
}

// Release drops the storage. Len is 0 afterwards.
func (p *Points) Release() {
	if p.f32 != nil {
		p.f32.Release()
	}
	if p.f64 != nil {
		p.f64.Release()
	}
}

// Vec3s copies all positions out.
func (p *Points) Vec3s() []Vec3 {
	out := make([]Vec3, p.Len())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

// Bounds returns the bounding box of all points.
func (p *Points) Bounds() geom.Bounds {
	b := geom.EmptyBounds()
	for i := range p.Len() {
		b = b.Extend(p.At(i))
	}
	return b
}

// reserve sizes the array for n points under a cap of limit points
// (0 = unlimited).
func (p *Points) reserve(n, limit int) error {
	if p.precision == PrecisionSingle {
		p.f32.SetLimit(3 * limit)
		return p.f32.Reserve(3 * n)
	}
	p.f64.SetLimit(3 * limit)
	return p.f64.Reserve(3 * n)
}

// validate rejects non-finite coordinates.
func (p *Points) validate() error {
	for i := range p.Len() {
		v := p.At(i)
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			return fmt.Errorf("%w: point %d is not finite (%v, %v, %v)", ErrInvalidPoints, i, v.X, v.Y, v.Z)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
