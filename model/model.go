package model

import "math"

// 网格设定
// 1. RPM 方向（横轴）101 个点，包含两端
// 2. ROP 方向（纵轴）101 个点，包含两端
// 3. DOC 单位 in/rev，ROP 单位 ft/hr

const (
	Points    = 101
	Intervals = Points - 1

	// 转速为 0 时 DOC 无意义，用一个足够大的值代替
	ZeroRpmDoc = 1000.0
)

// 两个标注框的默认文字
const (
	TextEngaged    = "DOC feature engaged<br>Adjust RPM, WOB, & Flow to Minimize:<br>-MSE (Whirl, balling, dysfunction) and<br>-Torque Variation (Stick-slip)"
	TextNotEngaged = "DOC feature not engaged<br>Increase WOB"
)

// 前后端通信消息类型
const (
	MsgPlot     = "plot"
	MsgPlotted  = "plotted"
	MsgPng      = "png"
	MsgRendered = "rendered"
	MsgError    = "error"
)

// 绘图参数
type Params struct {
	RopMin   float64 `json:"rop_min"`
	RopMax   float64 `json:"rop_max"`
	RpmMin   float64 `json:"rpm_min"`
	RpmMax   float64 `json:"rpm_max"`
	DocValue float64 `json:"doc_value"`

	// 可选，为空时使用默认文字
	TextAboveLine string  `json:"text_above_line,omitempty"`
	TextBelowLine string  `json:"text_below_line,omitempty"`
	FontSize      float64 `json:"font_size,omitempty"`
}

// AboveText returns the callout text for the engaged region.
func (p Params) AboveText() string {
	if p.TextAboveLine == "" {
		return TextEngaged
	}
	return p.TextAboveLine
}

// BelowText returns the callout text for the not-engaged region.
func (p Params) BelowText() string {
	if p.TextBelowLine == "" {
		return TextNotEngaged
	}
	return p.TextBelowLine
}

// FontSizeOr returns the requested font size, or def when it is unset or
// not a positive finite number.
func (p Params) FontSizeOr(def float64) float64 {
	if p.FontSize > 0 && !math.IsInf(p.FontSize, 0) {
		return p.FontSize
	}
	return def
}

// RpmAt 返回 RPM 区间内按比例 f 的位置
func (p Params) RpmAt(f float64) float64 {
	return (p.RpmMax-p.RpmMin)*f + p.RpmMin
}

// RopAt 返回 ROP 区间内按比例 f 的位置
func (p Params) RopAt(f float64) float64 {
	return (p.RopMax-p.RopMin)*f + p.RopMin
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
