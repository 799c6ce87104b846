// Package meshio reads and writes polyline meshes as YAML or JSON documents.
//
// A document looks like:
//
//	precision: double
//	points: [[0, 0, 0], [1, 0.5, 0], [2, 0]]
//	lines: [[0, 1, 2]]
//	point_data:
//	  - {name: temperature, components: 1, data: [20, 21, 19]}
//	cell_data: []
//
// Two-component points get Z = 0. Since JSON is valid YAML the same reader
// accepts both.
package meshio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/polydec"
)

// ErrFormat is returned for documents that do not describe a mesh.
var ErrFormat = errors.New("meshio: invalid mesh document")

// Format is a document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath picks JSON for .json files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// flow is a sequence emitted inline, e.g. [1, 2, 3].
type flow[T any] []T

func (f flow[T]) MarshalYAML() (any, error) {
	n := &yaml.Node{}
	if err := n.Encode([]T(f)); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

type array struct {
	Name       string        `yaml:"name" json:"name"`
	Components int           `yaml:"components" json:"components"`
	Data       flow[float64] `yaml:"data" json:"data"`
}

type document struct {
	Precision string          `yaml:"precision,omitempty" json:"precision,omitempty"`
	Points    []flow[float64] `yaml:"points" json:"points"`
	Lines     []flow[int]     `yaml:"lines" json:"lines"`
	PointData []array         `yaml:"point_data,omitempty" json:"point_data,omitempty"`
	CellData  []array         `yaml:"cell_data,omitempty" json:"cell_data,omitempty"`
}

// Read decodes a mesh document.
func Read(r io.Reader) (*polydec.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("meshio: read: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return doc.mesh()
}

// ReadFile decodes the mesh document at path.
func ReadFile(path string) (*polydec.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (doc *document) mesh() (*polydec.Mesh, error) {
	prec := polydec.PrecisionDouble
	if doc.Precision != "" {
		p, err := polydec.ParsePrecision(doc.Precision)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		prec = p
	}

	pts := polydec.NewPoints(prec, len(doc.Points))
	for i, p := range doc.Points {
		var v polydec.Vec3
		switch len(p) {
		case 3:
			v.Z = p[2]
			fallthrough
		case 2:
			v.X, v.Y = p[0], p[1]
		default:
			return nil, fmt.Errorf("%w: point %d has %d coordinates, want 2 or 3", ErrFormat, i, len(p))
		}
		if err := pts.Append(v); err != nil {
			return nil, err
		}
	}

	lines := polydec.NewLines()
	for _, ln := range doc.Lines {
		if err := lines.Append(ln...); err != nil {
			return nil, err
		}
	}
	return &polydec.Mesh{
		Points:    pts,
		Lines:     lines,
		PointData: attributes(doc.PointData),
		CellData:  attributes(doc.CellData),
	}, nil
}

func attributes(as []array) polydec.Attributes {
	if len(as) == 0 {
		return nil
	}
	out := make(polydec.Attributes, len(as))
	for i, a := range as {
		out[i] = polydec.Array{Name: a.Name, Components: a.Components, Data: a.Data}
	}
	return out
}

// Write encodes m in the given format.
func Write(w io.Writer, m *polydec.Mesh, f Format) error {
	doc := newDocument(m)
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return fmt.Errorf("meshio: write %s: %w", f, err)
	}
	return nil
}

// WriteFile encodes m to path, choosing the format from the extension.
func WriteFile(path string, m *polydec.Mesh) error {
	var buf bytes.Buffer
	if err := Write(&buf, m, FormatFromPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("meshio: %w", err)
	}
	return nil
}

func newDocument(m *polydec.Mesh) *document {
	doc := &document{
		Precision: m.Points.Precision().String(),
		Points:    make([]flow[float64], m.Points.Len()),
		Lines:     make([]flow[int], m.Lines.Len()),
	}
	single := m.Points.Precision() == polydec.PrecisionSingle
	for i := range doc.Points {
		v := m.Points.At(i)
		xyz := flow[float64]{v.X, v.Y, v.Z}
		if single {
			for k := range xyz {
				xyz[k] = shortest32(xyz[k])
			}
		}
		doc.Points[i] = xyz
	}
	for i := range doc.Lines {
		doc.Lines[i] = flow[int](m.Lines.Line(i))
	}
	doc.PointData = arrays(m.PointData)
	doc.CellData = arrays(m.CellData)
	return doc
}

func arrays(as polydec.Attributes) []array {
	out := make([]array, len(as))
	for i, a := range as {
		out[i] = array{Name: a.Name, Components: a.Components, Data: a.Data}
	}
	return out
}

// shortest32 returns the float64 with the shortest decimal form that still
// rounds to the same float32, so 0.1f prints as 0.1.
func shortest32(f float64) float64 {
	s := strconv.FormatFloat(f, 'g', -1, 32)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return f
	}
	return v
}
