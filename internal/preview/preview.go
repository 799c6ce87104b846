// Package preview renders before/after images of a decimation pass.
//
// Input polylines are drawn in light gray, decimated polylines on top in
// blue with their surviving vertices marked. Points are projected onto the
// XY plane.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/polydec"
)

// Options configures Render.
type Options struct {
	Width, Height int
	Margin        float64 // pixels kept clear on every side
	LineWidth     float64
	VertexSize    float64 // marker edge length, 0 hides markers
	Caption       string
}

// DefaultOptions returns a 800x600 preview with 1.5px lines.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Margin:     24,
		LineWidth:  1.5,
		VertexSize: 4,
	}
}

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	inputInk   = color.RGBA{R: 190, G: 190, B: 190, A: 255}
	outputInk  = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	vertexInk  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	captionInk = color.RGBA{A: 255}
)

// projection maps mesh XY coordinates to pixels.
type projection struct {
	minX, minY float64
	scale      float64
	offX, offY float64
	height     float64
}

func newProjection(m *polydec.Mesh, o Options) projection {
	b := m.Points.Bounds()
	p := projection{scale: 1, height: float64(o.Height)}
	if b.Empty() {
		return p
	}
	p.minX, p.minY = b.Min.X, b.Min.Y
	size := b.Size()
	w := float64(o.Width) - 2*o.Margin
	h := float64(o.Height) - 2*o.Margin
	switch {
	case size.X > 0 && size.Y > 0:
		p.scale = math.Min(w/size.X, h/size.Y)
	case size.X > 0:
		p.scale = w / size.X
	case size.Y > 0:
		p.scale = h / size.Y
	}
	p.offX = o.Margin + (w-size.X*p.scale)/2
	p.offY = o.Margin + (h-size.Y*p.scale)/2
	return p
}

func (p projection) apply(v polydec.Vec3) (float32, float32) {
	x := p.offX + (v.X-p.minX)*p.scale
	y := p.height - (p.offY + (v.Y-p.minY)*p.scale)
	return float32(x), float32(y)
}

// Render draws in, and out on top of it when out is non-nil. Both meshes
// share the projection fitted to in.
func Render(in, out *polydec.Mesh, o Options) (*image.RGBA, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("preview: invalid size %dx%d", o.Width, o.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	proj := newProjection(in, o)
	z := vector.NewRasterizer(o.Width, o.Height)
	hw := float32(o.LineWidth / 2)

	strokeLines(z, img, in, proj, hw, inputInk)
	if out != nil {
		strokeLines(z, img, out, proj, hw, outputInk)
		if o.VertexSize > 0 {
			markVertices(z, img, out, proj, float32(o.VertexSize/2), vertexInk)
		}
	}

	if o.Caption != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(captionInk),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, 16),
		}
		d.DrawString(o.Caption)
	}
	return img, nil
}

func strokeLines(z *vector.Rasterizer, dst *image.RGBA, m *polydec.Mesh, proj projection, hw float32, c color.RGBA) {
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	for i := range m.Lines.Len() {
		ln := m.Lines.Line(i)
		for k := 1; k < len(ln); k++ {
			ax, ay := proj.apply(m.Points.At(ln[k-1]))
			bx, by := proj.apply(m.Points.At(ln[k]))
			segment(z, ax, ay, bx, by, hw)
		}
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func markVertices(z *vector.Rasterizer, dst *image.RGBA, m *polydec.Mesh, proj projection, r float32, c color.RGBA) {
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	for i := range m.Points.Len() {
		x, y := proj.apply(m.Points.At(i))
		segment(z, x-r, y, x+r, y, r)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// segment adds a quad of half-width hw around a->b. Every quad winds the
// same way so overlapping quads accumulate instead of cancelling.
func segment(z *vector.Rasterizer, ax, ay, bx, by, hw float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		dx, dy, l = 1, 0, 1
		ax -= hw
		bx += hw
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
