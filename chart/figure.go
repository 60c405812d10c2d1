package chart

import (
	"docchart/calculator"
	"docchart/config"
	"docchart/model"
	"encoding/json"
)

const (
	// Target 页面中渲染图表的元素 id
	Target = "plot"

	ColorNotEngaged = "yellow"
	ColorEngaged    = "limegreen"
	ColorBorder     = "black"

	TitleX = "Rotary Speed (RPM)"
	TitleY = "Rate of Penetration (ft/hr)"
)

// 标注框在 RPM / ROP 区间内的位置比例
const (
	engagedX    = 0.3
	engagedY    = 0.8
	notEngagedX = 0.7
	notEngagedY = 0.2
)

// Figure is the argument pair of Plotly.newPlot: data series and layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	X          []Number    `json:"x"`
	Y          []Number    `json:"y"`
	Z          [][]Number  `json:"z"`
	Type       string      `json:"type"`
	Colorscale []ColorStop `json:"colorscale"`
	Contours   Contours    `json:"contours"`
}

// ColorStop encodes as a [position, color] pair.
type ColorStop struct {
	Pos   Number
	Color string
}

func (c ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{c.Pos, c.Color})
}

type Contours struct {
	Start      Number `json:"start"`
	End        Number `json:"end"`
	Size       Number `json:"size"`
	ShowLines  bool   `json:"showlines"`
	Coloring   string `json:"coloring"`
	ShowLabels bool   `json:"showlabels"`
}

type Layout struct {
	Title       string       `json:"title"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Annotations []Annotation `json:"annotations"`
}

type Axis struct {
	Title string `json:"title"`
}

type Annotation struct {
	X           Number `json:"x"`
	Y           Number `json:"y"`
	Text        string `json:"text"`
	ShowArrow   bool   `json:"showarrow"`
	Font        Font   `json:"font"`
	BgColor     string `json:"bgcolor"`
	BorderColor string `json:"bordercolor"`
	BorderWidth int    `json:"borderwidth"`
}

type Font struct {
	Size float64 `json:"size"`
}

// Title 图表标题，包含输入的 DOC 值
func Title(docValue float64) string {
	return "DOC Chart (DOC = " + FormatValue(docValue) + " in/rev)"
}

// NewFigure assembles the contour series and layout for a computed grid.
func NewFigure(p model.Params, g *calculator.Grid, cfg config.Chart) *Figure {
	fontSize := p.FontSizeOr(cfg.FontSize)

	trace := Trace{
		X:    numbers(g.RPM),
		Y:    numbers(g.ROP),
		Z:    matrix(g.Rows()),
		Type: "contour",
		Colorscale: []ColorStop{
			{0, ColorNotEngaged},
			{Number(g.Stop(p.DocValue)), ColorEngaged},
			{1, ColorEngaged},
		},
		Contours: Contours{
			Start:      0,
			End:        Number(g.MaxDoc),
			Size:       Number(cfg.ContourSize),
			ShowLines:  true,
			Coloring:   "fill",
			ShowLabels: true,
		},
	}

	layout := Layout{
		Title:  Title(p.DocValue),
		XAxis:  Axis{Title: TitleX},
		YAxis:  Axis{Title: TitleY},
		Width:  cfg.Width,
		Height: cfg.Height,
		Annotations: []Annotation{
			callout(p.RpmAt(engagedX), p.RopAt(engagedY), p.AboveText(), ColorEngaged, fontSize),
			callout(p.RpmAt(notEngagedX), p.RopAt(notEngagedY), p.BelowText(), ColorNotEngaged, fontSize),
		},
	}

	return &Figure{Data: []Trace{trace}, Layout: layout}
}

func callout(x, y float64, text, bg string, fontSize float64) Annotation {
	return Annotation{
		X:           Number(x),
		Y:           Number(y),
		Text:        text,
		ShowArrow:   false,
		Font:        Font{Size: fontSize},
		BgColor:     bg,
		BorderColor: ColorBorder,
		BorderWidth: 1,
	}
}

// Plot computes the grid for p and returns the figure, the whole path of
// one trigger.
func Plot(p model.Params, cfg config.Chart) *Figure {
	return NewFigure(p, calculator.Compute(p), cfg)
}
