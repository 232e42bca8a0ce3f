package sheet

import "strings"

// Color is a color in RRGGBB hex form or one of a small set of names.
type Color string

var namedColors = map[string]string{
	"BLACK":   "000000",
	"WHITE":   "FFFFFF",
	"RED":     "FF0000",
	"GREEN":   "00FF00",
	"BLUE":    "0000FF",
	"YELLOW":  "FFFF00",
	"CYAN":    "00FFFF",
	"MAGENTA": "FF00FF",
	"GRAY":    "808080",
	"GREY":    "808080",
	"ORANGE":  "FFA500",
	"PURPLE":  "800080",
	"PINK":    "FFC0CB",
}

// Hex returns the normalized RRGGBB form without a leading '#'.
// Unknown names pass through uppercased so the adapter surfaces them.
func (c Color) Hex() string {
	v := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(string(c)), "#"))
	if mapped, ok := namedColors[v]; ok {
		return mapped
	}
	return v
}

// HorizontalAlignment options.
type HorizontalAlignment string

const (
	AlignLeft    HorizontalAlignment = "left"
	AlignCenter  HorizontalAlignment = "center"
	AlignRight   HorizontalAlignment = "right"
	AlignJustify HorizontalAlignment = "justify"
)

// VerticalAlignment options.
type VerticalAlignment string

const (
	AlignTop    VerticalAlignment = "top"
	AlignMiddle VerticalAlignment = "center"
	AlignBottom VerticalAlignment = "bottom"
)

// Alignment configures cell alignment.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
	WrapText   bool
	Indent     int
}

// BorderStyle options.
type BorderStyle string

const (
	BorderNone   BorderStyle = ""
	BorderThin   BorderStyle = "thin"
	BorderMedium BorderStyle = "medium"
	BorderThick  BorderStyle = "thick"
	BorderDouble BorderStyle = "double"
	BorderDotted BorderStyle = "dotted"
	BorderDashed BorderStyle = "dashed"
)

// Border configures per-edge borders.
type Border struct {
	Left   BorderStyle
	Right  BorderStyle
	Top    BorderStyle
	Bottom BorderStyle
	Color  Color
}

// BorderAll creates a border with the same style on all edges.
func BorderAll(style BorderStyle, color Color) *Border {
	return &Border{Left: style, Right: style, Top: style, Bottom: style, Color: color}
}

// UnderlineStyle options.
type UnderlineStyle string

const (
	UnderlineNone   UnderlineStyle = ""
	UnderlineSingle UnderlineStyle = "single"
	UnderlineDouble UnderlineStyle = "double"
)

// Font configures cell fonts.
type Font struct {
	Family        string
	Size          float64
	Bold          bool
	Italic        bool
	Underline     UnderlineStyle
	Strikethrough bool
	Color         Color
}

// FillPattern options.
type FillPattern string

const (
	PatternSolid     FillPattern = "solid"
	PatternGray125   FillPattern = "gray125"
	PatternLightGray FillPattern = "lightGray"
	PatternDarkGray  FillPattern = "darkGray"
)

// Fill configures the cell background.
type Fill struct {
	Pattern    FillPattern
	Foreground Color
	Background Color
}

// SolidFill creates a solid fill of the given color.
func SolidFill(color Color) *Fill {
	return &Fill{Pattern: PatternSolid, Foreground: color}
}

// CellStyle is the complete style for a cell. Nil sub-structs mean
// "not set" and fall through on merge.
type CellStyle struct {
	Font         *Font
	Fill         *Fill
	Border       *Border
	Alignment    *Alignment
	NumberFormat string
}

// Merge overlays other on top of the receiver attribute-wise: attributes
// set by other win, unset attributes keep the receiver's value. Both
// inputs are left untouched.
func (s *CellStyle) Merge(other *CellStyle) *CellStyle {
	if s == nil {
		return other
	}
	if other == nil {
		return s
	}

	merged := &CellStyle{
		Font:         s.Font,
		Fill:         s.Fill,
		Border:       s.Border,
		Alignment:    s.Alignment,
		NumberFormat: s.NumberFormat,
	}
	if other.Font != nil {
		merged.Font = other.Font
	}
	if other.Fill != nil {
		merged.Fill = other.Fill
	}
	if other.Border != nil {
		merged.Border = other.Border
	}
	if other.Alignment != nil {
		merged.Alignment = other.Alignment
	}
	if other.NumberFormat != "" {
		merged.NumberFormat = other.NumberFormat
	}
	return merged
}

// HeaderStyle is the default style for header rows.
func HeaderStyle() *CellStyle {
	return &CellStyle{
		Font:      &Font{Bold: true, Size: 11},
		Fill:      SolidFill("D3D3D3"),
		Alignment: &Alignment{Horizontal: AlignCenter, Vertical: AlignMiddle},
		Border:    BorderAll(BorderThin, ""),
	}
}

// TitleStyle is the default style for table titles.
func TitleStyle() *CellStyle {
	return &CellStyle{
		Font:      &Font{Bold: true, Size: 14},
		Alignment: &Alignment{Horizontal: AlignCenter, Vertical: AlignMiddle},
	}
}

// NegativeStyle is the conventional style for negative values.
func NegativeStyle() *CellStyle {
	return &CellStyle{
		Font:      &Font{Color: "FF0000"},
		Alignment: &Alignment{Horizontal: AlignRight},
	}
}
