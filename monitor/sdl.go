package monitor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CellSize is the pixel width/height of one character cell.
const CellSize = 8

var palette = map[Color]color.RGBA{
	Black:       {0, 0, 0, 255},
	White:       {255, 255, 255, 255},
	Red:         {136, 0, 0, 255},
	Cyan:        {170, 255, 238, 255},
	Pink:        {204, 68, 204, 255},
	Green:       {0, 204, 85, 255},
	Blue:        {0, 0, 170, 255},
	Yellow:      {238, 238, 119, 255},
	Orange:      {221, 136, 85, 255},
	Brown:       {102, 68, 0, 255},
	LightRed:    {255, 119, 119, 255},
	DarkGrey:    {51, 51, 51, 255},
	MediumGrey:  {119, 119, 119, 255},
	LightGreen:  {170, 255, 102, 255},
	LightBlue:   {0, 136, 255, 255},
	LightGray:   {187, 187, 187, 255},
}

// surfaceImage adapts an sdl.Surface to draw.Image so glyphs can be
// rasterized onto it with golang.org/x/image/font, mirroring the teacher's
// own fastImage adapter over a window surface.
type surfaceImage struct {
	surface *sdl.Surface
}

func (s *surfaceImage) ColorModel() color.Model { return s.surface.ColorModel() }
func (s *surfaceImage) Bounds() image.Rectangle { return s.surface.Bounds() }
func (s *surfaceImage) At(x, y int) color.Color { return s.surface.At(x, y) }

func (s *surfaceImage) Set(x, y int, c color.Color) {
	i := int32(y)*s.surface.Pitch + int32(x)*int32(s.surface.Format.BytesPerPixel)
	r, g, b, a := c.RGBA()
	data := s.surface.Pixels()
	data[i+0] = uint8(r >> 8)
	data[i+1] = uint8(g >> 8)
	data[i+2] = uint8(b >> 8)
	data[i+3] = uint8(a >> 8)
}

// SDLMonitor renders each SetSymbol call as a filled cell plus a glyph, in
// an 8x8 grid window, grounded in the teacher's vcs/vcs_main.go window/
// surface setup and atari2600/atari2600.go frame buffer handling.
type SDLMonitor struct {
	window *sdl.Window
	img    *surfaceImage
	cols   int
	rows   int
}

// NewSDLMonitor opens a window sized for cols x rows character cells.
func NewSDLMonitor(cols, rows int) (*SDLMonitor, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	window, err := sdl.CreateWindow("sixfiveohtwo", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cols*CellSize), int32(rows*CellSize), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	surface, err := window.GetSurface()
	if err != nil {
		return nil, fmt.Errorf("get surface: %w", err)
	}
	return &SDLMonitor{window: window, img: &surfaceImage{surface: surface}, cols: cols, rows: rows}, nil
}

// Close releases the SDL window.
func (m *SDLMonitor) Close() {
	m.window.Destroy()
	sdl.Quit()
}

// Clear implements Monitor.
func (m *SDLMonitor) Clear() {
	draw.Draw(m.img, m.img.Bounds(), &image.Uniform{C: palette[Black]}, image.Point{}, draw.Src)
	m.window.UpdateSurface()
}

// SetSymbol implements Monitor.
func (m *SDLMonitor) SetSymbol(x, y uint16, symbol rune, c Color) {
	rect := image.Rect(int(x)*CellSize, int(y)*CellSize, int(x)*CellSize+CellSize, int(y)*CellSize+CellSize)
	draw.Draw(m.img, rect, &image.Uniform{C: palette[c]}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  m.img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x)*CellSize, int(y)*CellSize+CellSize-2),
	}
	d.DrawString(string(symbol))
	m.window.UpdateSurface()
}
