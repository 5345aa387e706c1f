package theme

// StyleID identifies a Style in a Theme's style table. NoStyle means "no
// style reference"; it resolves to the theme's default Style.
type StyleID int

// NoStyle is the zero StyleID.
const NoStyle StyleID = 0

// Stroke describes how outlines are painted.
type Stroke struct {
	Paint Paint
	Width float64
	Dash  []float64
}

// Fill describes how interiors are painted.
type Fill struct {
	Paint   Paint
	Opacity float64
}

// MarkerShape is the shape drawn at a connector end.
type MarkerShape uint8

const (
	MarkerArrow MarkerShape = iota
	MarkerCircle
	MarkerBar
)

func (m MarkerShape) String() string {
	switch m {
	case MarkerCircle:
		return "circle"
	case MarkerBar:
		return "bar"
	}
	return "arrow"
}

// Marker is an end decoration. Length is the distance the marker occupies
// along the connector and is what the joint engine trims for.
type Marker struct {
	Shape  MarkerShape
	Length float64
	Width  float64
}

// Font describes text attributes. Text is never shaped here; backends use
// these values verbatim.
type Font struct {
	Family string
	Size   float64
	Weight int
}

// MarkerSuite holds the resolved start and end markers of a Style.
type MarkerSuite struct {
	Start *Marker
	End   *Marker
}

// StartLength returns the length of the start marker, or zero.
func (m MarkerSuite) StartLength() float64 {
	if m.Start == nil {
		return 0
	}
	return m.Start.Length
}

// EndLength returns the length of the end marker, or zero.
func (m MarkerSuite) EndLength() float64 {
	if m.End == nil {
		return 0
	}
	return m.End.Length
}

// Style is a theme-owned, named bundle of paint attributes. The *Name fields
// are symbolic references into the theme's tables; the resolved fields are
// written by the theme every time the active variation changes. A nil
// resolved field means "none".
//
// Styles are shared by pointer. Callers must treat them as read-only.
type Style struct {
	ID   StyleID
	Name string

	StrokeName  string
	FillName    string
	MarkerStart string
	MarkerEnd   string
	FontName    string

	Stroke  *Stroke
	Fill    *Fill
	Markers MarkerSuite
	Font    *Font
}

// StrokeWidth returns the resolved stroke width, or zero when unstroked.
func (s *Style) StrokeWidth() float64 {
	if s == nil || s.Stroke == nil {
		return 0
	}
	return s.Stroke.Width
}

// StyleSpec declares a Style by name. Used with Theme.WithStyles.
type StyleSpec struct {
	Name        string
	Stroke      string
	Fill        string
	MarkerStart string
	MarkerEnd   string
	Font        string
}
