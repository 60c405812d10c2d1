package render

import (
	"docchart/calculator"
	"docchart/chart"
	"docchart/config"
	"docchart/model"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	// ErrDegenerateRange is returned when an axis bound is not finite or the
	// range is empty or reversed; a raster has no plane to draw on.
	ErrDegenerateRange = errors.New("render: axis range is empty, reversed or not finite")
	ErrInvalidDoc      = errors.New("render: doc value is not finite")
)

var (
	yellow    = color.RGBA{R: 255, G: 255, A: 255}
	limeGreen = color.RGBA{R: 50, G: 205, B: 50, A: 255}
	gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

type Options struct {
	Width    float64 // 英寸
	Height   float64 // 英寸
	DPI      int
	FontSize float64
}

func OptionsFrom(cfg config.Render) Options {
	return Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		DPI:      cfg.DPI,
		FontSize: cfg.FontSize,
	}
}

// PNG draws the grid as a two colour region map split at p.DocValue, with
// the DOC contour line and both callouts, and writes it to w as PNG.
func PNG(w io.Writer, p model.Params, g *calculator.Grid, opts Options) error {
	plt, err := NewPlot(p, g, opts)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	plt.Draw(draw.New(c))

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

// NewPlot builds the gonum plot without drawing it.
func NewPlot(p model.Params, g *calculator.Grid, opts Options) (*plot.Plot, error) {
	if err := checkRange(p.RpmMin, p.RpmMax); err != nil {
		return nil, fmt.Errorf("rpm %v..%v: %w", p.RpmMin, p.RpmMax, err)
	}
	if err := checkRange(p.RopMin, p.RopMax); err != nil {
		return nil, fmt.Errorf("rop %v..%v: %w", p.RopMin, p.RopMax, err)
	}
	if math.IsNaN(p.DocValue) || math.IsInf(p.DocValue, 0) {
		return nil, ErrInvalidDoc
	}

	fontSize := p.FontSizeOr(opts.FontSize)

	plt := plot.New()
	plt.Title.Text = chart.Title(p.DocValue)
	plt.Title.TextStyle.Font.Size = vg.Points(fontSize + 2)
	plt.X.Label.Text = chart.TitleX
	plt.Y.Label.Text = chart.TitleY
	plt.X.Label.TextStyle.Font.Size = vg.Points(fontSize)
	plt.Y.Label.TextStyle.Font.Size = vg.Points(fontSize)

	fill := plotter.NewHeatMap(engagedGrid{docGrid{g}, p.DocValue}, palette{yellow, limeGreen})
	fill.Min, fill.Max = 0, 1
	plt.Add(fill)

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	plt.Add(grid)

	line := plotter.NewContour(docGrid{g}, []float64{p.DocValue}, palette{color.Black})
	plt.Add(line)

	sty := plt.X.Label.TextStyle
	sty.Font.Size = vg.Points(fontSize)
	sty.Rotation = 0
	sty.Color = color.Black
	for _, co := range callouts(p, sty) {
		plt.Add(co)
	}
	if co := docLabel(p, sty); co != nil {
		plt.Add(co)
	}

	plt.X.Min, plt.X.Max = p.RpmMin, p.RpmMax
	plt.Y.Min, plt.Y.Max = p.RopMin, p.RopMax
	return plt, nil
}

func checkRange(lo, hi float64) error {
	for _, v := range []float64{lo, hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrDegenerateRange
		}
	}
	if hi <= lo || math.IsInf(hi-lo, 0) {
		return ErrDegenerateRange
	}
	return nil
}

// callouts 两个区域说明框，位置与 Plotly 图表相同
func callouts(p model.Params, sty text.Style) []*callout {
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter
	return []*callout{
		newCallout(p.RpmAt(0.3), p.RopAt(0.8), plainText(p.AboveText()), sty, limeGreen, color.Black),
		newCallout(p.RpmAt(0.7), p.RopAt(0.2), plainText(p.BelowText()), sty, yellow, color.Black),
	}
}

// docLabel marks the far end of the DOC contour with its value. It returns
// nil when the contour does not cross the plot area.
func docLabel(p model.Params, sty text.Style) *callout {
	x, y, ok := docLineEnd(p)
	if !ok {
		return nil
	}
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YCenter
	co := newCallout(x, y, chart.FormatValue(p.DocValue)+" in/rev", sty, color.White, gray)
	co.Offset = vg.Point{X: vg.Points(5)}
	return co
}

// docLineEnd 返回 DOC = p.DocValue 的等值线离开绘图区的点。
// DOC = ROP*12/(RPM*60)，等值线为过原点的直线 ROP = 5*DOC*RPM。
func docLineEnd(p model.Params) (x, y float64, ok bool) {
	k := 5 * p.DocValue
	if k <= 0 {
		return 0, 0, false
	}
	x, y = p.RpmMax, k*p.RpmMax
	if y > p.RopMax {
		x, y = p.RopMax/k, p.RopMax
	}
	if x < p.RpmMin || y < p.RopMin || x <= 0 {
		return 0, 0, false
	}
	return x, y, true
}

// 标注文字中的 <br> 只对 Plotly 有效
func plainText(s string) string {
	return strings.ReplaceAll(s, "<br>", "\n")
}

type palette []color.Color

func (p palette) Colors() []color.Color { return p }

// docGrid 将 Grid 适配为 plotter.GridXYZ，列对应 RPM，行对应 ROP
type docGrid struct {
	g *calculator.Grid
}

func (d docGrid) Dims() (c, r int) {
	r, c = d.g.DOC.Dims()
	return c, r
}

func (d docGrid) Z(c, r int) float64 { return d.g.DOC.At(r, c) }
func (d docGrid) X(c int) float64 { return d.g.RPM[c] }
func (d docGrid) Y(r int) float64 { return d.g.ROP[r] }

// engagedGrid 大于等于 docValue 的区域为 1，其余为 0
type engagedGrid struct {
	docGrid
	docValue float64
}

func (e engagedGrid) Z(c, r int) float64 {
	if e.docGrid.Z(c, r) >= e.docValue {
		return 1
	}
	return 0
}
