package sink

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// The raster backend always draws with the Go fonts; font families named by
// the theme only apply to vector output.
var (
	parseOnce             sync.Once
	regularFont, boldFont *opentype.Font
	parseErr              error
)

func goFonts() (*opentype.Font, *opentype.Font, error) {
	parseOnce.Do(func() {
		if regularFont, parseErr = opentype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		boldFont, parseErr = opentype.Parse(gobold.TTF)
	})
	return regularFont, boldFont, parseErr
}

type faceKey struct {
	bold bool
	size float64
}

type textDrawer struct {
	faces map[faceKey]font.Face
}

func newTextDrawer() *textDrawer {
	return &textDrawer{faces: map[faceKey]font.Face{}}
}

func (d *textDrawer) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold, size}
	if f, ok := d.faces[key]; ok {
		return f, nil
	}
	regular, heavy, err := goFonts()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse go fonts")
	}
	src := regular
	if bold {
		src = heavy
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "font face %gpt", size)
	}
	d.faces[key] = f
	return f, nil
}

// draw renders t centered vertically on its anchor, with the optional
// spans one font size above and below.
func (d *textDrawer) draw(dst *image.RGBA, t scene.Text, f theme.Font, col color.Color, scale float64) error {
	size := f.Size * t.FontScale() * scale
	bold := f.Weight >= 600
	x, y := t.At.X*scale, t.At.Y*scale

	line := func(y, size float64, s string) error {
		if s == "" || size <= 0 {
			return nil
		}
		face, err := d.face(bold, size)
		if err != nil {
			return err
		}
		dr := font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
		width := dr.MeasureString(s)
		m := face.Metrics()

		dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y*64) + (m.Ascent-m.Descent)/2}
		switch t.Align {
		case scene.AlignMiddle:
			dot.X -= width / 2
		case scene.AlignEnd:
			dot.X -= width
		}
		dr.Dot = dot
		dr.DrawString(s)
		return nil
	}

	if err := line(y-size, size*spanScale, t.Upper); err != nil {
		return err
	}
	if err := line(y, size, t.Text); err != nil {
		return err
	}
	return line(y+size, size*spanScale, t.Lower)
}
