package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// callout draws text at a data coordinate inside a filled, outlined box.
type callout struct {
	X, Y      float64
	Text      string
	TextStyle text.Style
	// Offset 文字相对数据点的偏移
	Offset  vg.Point
	Padding vg.Length
	Fill    color.Color
	Border  draw.LineStyle
}

func newCallout(x, y float64, txt string, sty text.Style, fill, border color.Color) *callout {
	return &callout{
		X:         x,
		Y:         y,
		Text:      txt,
		TextStyle: sty,
		Padding:   vg.Points(4),
		Fill:      fill,
		Border:    draw.LineStyle{Color: border, Width: vg.Points(1)},
	}
}

// Plot implements plot.Plotter.
func (co *callout) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pt := vg.Point{X: trX(co.X), Y: trY(co.Y)}.Add(co.Offset)
	box := co.box(pt)
	if co.Fill != nil {
		c.FillPolygon(co.Fill, box)
	}
	if co.Border.Color != nil {
		c.StrokeLines(co.Border, append(box, box[0]))
	}
	c.FillText(co.TextStyle, pt, co.Text)
}

// box 返回文字外框的四个顶点，逆时针
func (co *callout) box(pt vg.Point) []vg.Point {
	r := co.TextStyle.Rectangle(co.Text)
	pad := vg.Point{X: co.Padding, Y: co.Padding}
	min := pt.Add(r.Min).Sub(pad)
	max := pt.Add(r.Max).Add(pad)
	return []vg.Point{min, {X: max.X, Y: min.Y}, max, {X: min.X, Y: max.Y}}
}
