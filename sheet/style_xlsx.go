package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxStyleCache deduplicates excelize style registrations. Workbooks
// carry a hard limit on the number of cell formats, so identical styles
// must map to a single style ID.
type xlsxStyleCache struct {
	file *excelize.File
	ids  map[string]int
}

func newXLSXStyleCache(file *excelize.File) *xlsxStyleCache {
	return &xlsxStyleCache{file: file, ids: make(map[string]int)}
}

// resolve returns the excelize style ID for a cell style combined with a
// cell-level number format. Zero means "no style".
func (c *xlsxStyleCache) resolve(style *CellStyle, numberFormat string) (int, error) {
	numFmt := numberFormat
	if numFmt == "" && style != nil {
		numFmt = style.NumberFormat
	}
	if style == nil && numFmt == "" {
		return 0, nil
	}

	key := styleKey(style, numFmt)
	if id, ok := c.ids[key]; ok {
		return id, nil
	}

	id, err := c.file.NewStyle(toExcelizeStyle(style, numFmt))
	if err != nil {
		return 0, NewError(KindRender, "register cell style", err)
	}
	c.ids[key] = id
	return id, nil
}

func styleKey(style *CellStyle, numFmt string) string {
	var b strings.Builder
	if style != nil {
		if f := style.Font; f != nil {
			fmt.Fprintf(&b, "f:%s,%g,%t,%t,%s,%t,%s;", f.Family, f.Size, f.Bold, f.Italic, f.Underline, f.Strikethrough, f.Color.Hex())
		}
		if fl := style.Fill; fl != nil {
			fmt.Fprintf(&b, "l:%s,%s,%s;", fl.Pattern, fl.Foreground.Hex(), fl.Background.Hex())
		}
		if bd := style.Border; bd != nil {
			fmt.Fprintf(&b, "b:%s,%s,%s,%s,%s;", bd.Left, bd.Right, bd.Top, bd.Bottom, bd.Color.Hex())
		}
		if al := style.Alignment; al != nil {
			fmt.Fprintf(&b, "a:%s,%s,%t,%d;", al.Horizontal, al.Vertical, al.WrapText, al.Indent)
		}
	}
	fmt.Fprintf(&b, "n:%s", numFmt)
	return b.String()
}

var fillPatternIDs = map[FillPattern]int{
	PatternSolid:     1,
	PatternDarkGray:  3,
	PatternLightGray: 4,
	PatternGray125:   17,
}

var borderStyleIDs = map[BorderStyle]int{
	BorderThin:   1,
	BorderMedium: 2,
	BorderDashed: 3,
	BorderDotted: 4,
	BorderThick:  5,
	BorderDouble: 6,
}

func toExcelizeStyle(style *CellStyle, numFmt string) *excelize.Style {
	out := &excelize.Style{}
	if style != nil {
		if f := style.Font; f != nil {
			out.Font = &excelize.Font{
				Family:    f.Family,
				Size:      f.Size,
				Bold:      f.Bold,
				Italic:    f.Italic,
				Strike:    f.Strikethrough,
				Underline: string(f.Underline),
			}
			if f.Color != "" {
				out.Font.Color = f.Color.Hex()
			}
		}
		if fl := style.Fill; fl != nil {
			fill := excelize.Fill{Type: "pattern", Pattern: fillPatternIDs[fl.Pattern]}
			if fl.Foreground != "" {
				fill.Color = append(fill.Color, fl.Foreground.Hex())
			}
			if fl.Background != "" {
				fill.Color = append(fill.Color, fl.Background.Hex())
			}
			out.Fill = fill
		}
		if bd := style.Border; bd != nil {
			color := bd.Color.Hex()
			if color == "" {
				color = "000000"
			}
			edges := []struct {
				side  string
				style BorderStyle
			}{
				{"left", bd.Left},
				{"right", bd.Right},
				{"top", bd.Top},
				{"bottom", bd.Bottom},
			}
			for _, e := range edges {
				if e.style == BorderNone {
					continue
				}
				out.Border = append(out.Border, excelize.Border{
					Type:  e.side,
					Style: borderStyleIDs[e.style],
					Color: color,
				})
			}
		}
		if al := style.Alignment; al != nil {
			out.Alignment = &excelize.Alignment{
				Horizontal: string(al.Horizontal),
				Vertical:   string(al.Vertical),
				WrapText:   al.WrapText,
				Indent:     al.Indent,
			}
		}
	}
	if numFmt != "" {
		f := numFmt
		out.CustomNumFmt = &f
	}
	return out
}
