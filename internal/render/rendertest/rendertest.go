// Package rendertest provides an in-memory render backend that records draw
// calls, for driving game code in tests.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/weatherrun/internal/render"
)

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpFill OpKind = iota
	OpClear
	OpRect
	OpImage
	OpText
)

// Op is one recorded draw call against an Image.
type Op struct {
	Kind          OpKind
	X, Y          float64
	Width, Height float64
	Color         color.RGBA
	Src           *Image
	Text          string
}

// Renderer records everything drawn through it.
type Renderer struct {
	Uploads int // Images created from decoded sources
}

// NewRenderer creates a recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	r.Uploads++
	b := src.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

func (r *Renderer) NewGeoM() render.GeoM {
	return &GeoM{SX: 1, SY: 1}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	dst.(*Image).record(Op{
		Kind:   OpRect,
		X:      float64(x),
		Y:      float64(y),
		Width:  float64(width),
		Height: float64(height),
		Color:  rgba(clr),
	})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	dst.(*Image).record(Op{Kind: OpText, X: float64(x), Y: float64(y), Color: rgba(clr), Text: text})
}

func (r *Renderer) MeasureText(text string) (width, height int) {
	return len(text) * 6, 16
}

// Image is a recording render.Image.
type Image struct {
	W, H     int
	Ops      []Op
	Disposed bool
}

// NewImage creates an empty recording image.
func NewImage(width, height int) *Image {
	return &Image{W: width, H: height}
}

func (i *Image) record(op Op) {
	i.Ops = append(i.Ops, op)
}

func (i *Image) Size() (width, height int) {
	return i.W, i.H
}

func (i *Image) Fill(clr color.Color) {
	i.record(Op{Kind: OpFill, Width: float64(i.W), Height: float64(i.H), Color: rgba(clr)})
}

func (i *Image) Clear() {
	i.record(Op{Kind: OpClear})
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := Op{Kind: OpImage, Src: src.(*Image)}
	op.Width, op.Height = float64(op.Src.W), float64(op.Src.H)
	if opts != nil && opts.GeoM != nil {
		g := opts.GeoM.(*GeoM)
		op.X, op.Y = g.TX, g.TY
		op.Width *= g.SX
		op.Height *= g.SY
	}
	i.record(op)
}

func (i *Image) Dispose() {
	i.Disposed = true
}

// Reset drops the recorded calls.
func (i *Image) Reset() {
	i.Ops = i.Ops[:0]
}

// OpsOf returns the recorded calls of one kind, in order.
func (i *Image) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range i.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// GeoM tracks scale followed by translation, which is all the game uses.
type GeoM struct {
	SX, SY float64
	TX, TY float64
}

func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

func (g *GeoM) Scale(sx, sy float64) {
	g.SX *= sx
	g.SY *= sy
	g.TX *= sx
	g.TY *= sy
}

// Input is a scripted render.InputManager. Set the key edges before each tick.
type Input struct {
	JustPressed  map[render.Key]bool
	JustReleased map[render.Key]bool
}

// NewInput creates an input with no recorded edges.
func NewInput() *Input {
	in := &Input{}
	in.Reset()
	return in
}

// Press marks key as pressed this tick.
func (in *Input) Press(key render.Key) {
	in.JustPressed[key] = true
}

// Release marks key as released this tick.
func (in *Input) Release(key render.Key) {
	in.JustReleased[key] = true
}

// EndTick clears the edges recorded for the tick.
func (in *Input) EndTick() {
	clear(in.JustPressed)
	clear(in.JustReleased)
}

// Reset drops every recorded edge.
func (in *Input) Reset() {
	in.JustPressed = map[render.Key]bool{}
	in.JustReleased = map[render.Key]bool{}
}

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }
func (in *Input) IsKeyJustReleased(key render.Key) bool { return in.JustReleased[key] }

func rgba(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
