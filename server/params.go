package server

import (
	"docchart/model"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// 页面表单字段 id，同时用作查询参数名
const (
	FieldRopMin   = "rop-min"
	FieldRopMax   = "rop-max"
	FieldRpmMin   = "rpm-min"
	FieldRpmMax   = "rpm-max"
	FieldDocValue = "doc-value"

	FieldTextAbove = "text-above-line"
	FieldTextBelow = "text-below-line"
	FieldFontSize  = "font-size"
)

// /api/figure 请求体中的字段名，与 model.Params 的 json tag 一致
const (
	KeyRopMin   = "rop_min"
	KeyRopMax   = "rop_max"
	KeyRpmMin   = "rpm_min"
	KeyRpmMax   = "rpm_max"
	KeyDocValue = "doc_value"

	KeyTextAbove = "text_above_line"
	KeyTextBelow = "text_below_line"
	KeyFontSize  = "font_size"
)

// ParseParams reads the five chart inputs through get. A value that does not
// parse becomes NaN and is passed on unchanged.
func ParseParams(get func(key string) string) model.Params {
	p := model.Params{
		RopMin:        parseFloat(FieldRopMin, get(FieldRopMin)),
		RopMax:        parseFloat(FieldRopMax, get(FieldRopMax)),
		RpmMin:        parseFloat(FieldRpmMin, get(FieldRpmMin)),
		RpmMax:        parseFloat(FieldRpmMax, get(FieldRpmMax)),
		DocValue:      parseFloat(FieldDocValue, get(FieldDocValue)),
		TextAboveLine: get(FieldTextAbove),
		TextBelowLine: get(FieldTextBelow),
		FontSize:      parseFontSize(get(FieldFontSize)),
	}
	return p
}

// DecodeParams reads a JSON object keyed like model.Params. Numbers may be
// sent as JSON numbers or strings; a missing or non-numeric field becomes NaN
// the same way a bad form field does.
func DecodeParams(r io.Reader) (model.Params, error) {
	body := map[string]json.RawMessage{}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return model.Params{}, err
	}
	get := func(key string) string {
		raw, ok := body[key]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return string(raw)
	}
	return model.Params{
		RopMin:        parseFloat(KeyRopMin, get(KeyRopMin)),
		RopMax:        parseFloat(KeyRopMax, get(KeyRopMax)),
		RpmMin:        parseFloat(KeyRpmMin, get(KeyRpmMin)),
		RpmMax:        parseFloat(KeyRpmMax, get(KeyRpmMax)),
		DocValue:      parseFloat(KeyDocValue, get(KeyDocValue)),
		TextAboveLine: get(KeyTextAbove),
		TextBelowLine: get(KeyTextBelow),
		FontSize:      parseFontSize(get(KeyFontSize)),
	}, nil
}

// 字号无效时返回 0，使用配置中的默认值
func parseFontSize(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseFloat(field, s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		log.WithFields(log.Fields{"field": field, "value": s}).Warn("not a number")
		return math.NaN()
	}
	return v
}

// fields 是 websocket 请求中的表单内容
type fields map[string]string

func (f fields) get(key string) string { return f[key] }
