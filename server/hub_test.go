package server

import (
	"bytes"
	"docchart/config"
	"docchart/model"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plotMsg(t *testing.T, typ string, f fields) model.Msg {
	content, err := json.Marshal(f)
	require.NoError(t, err)
	return model.Msg{Type: typ, Content: string(content)}
}

func TestHubHandlePlot(t *testing.T) {
	h := NewHub(config.Default())
	reply := h.handle(plotMsg(t, model.MsgPlot, fields{
		FieldRopMin: "0", FieldRopMax: "100", FieldRpmMin: "0", FieldRpmMax: "200", FieldDocValue: "1",
	}))
	require.Equal(t, model.MsgPlotted, reply.Type)

	var fig struct {
		Data []struct {
			Z [][]float64 `json:"z"`
		} `json:"data"`
		Layout struct {
			Title string `json:"title"`
		} `json:"layout"`
	}
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &fig))
	assert.Equal(t, "DOC Chart (DOC = 1 in/rev)", fig.Layout.Title)
	assert.Equal(t, 1000.0, fig.Data[0].Z[7][0])
	assert.InDelta(t, 0.1, fig.Data[0].Z[100][100], 1e-12)
}

func TestHubHandlePlotNotANumber(t *testing.T) {
	h := NewHub(config.Default())
	reply := h.handle(plotMsg(t, model.MsgPlot, fields{FieldRopMin: "x"}))
	assert.Equal(t, model.MsgPlotted, reply.Type)
	assert.Contains(t, reply.Content, "null")
}

func TestHubHandlePlotInfiniteFontSize(t *testing.T) {
	h := NewHub(config.Default())
	reply := h.handle(plotMsg(t, model.MsgPlot, fields{
		FieldRopMin: "0", FieldRopMax: "100", FieldRpmMin: "0", FieldRpmMax: "200", FieldDocValue: "1",
		FieldFontSize: "inf",
	}))
	require.Equal(t, model.MsgPlotted, reply.Type, reply.Content)
	assert.Contains(t, reply.Content, `"font":{"size":16}`)
}

func TestHubHandlePng(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height, cfg.Render.DPI = 4, 3, 40
	h := NewHub(cfg)
	reply := h.handle(plotMsg(t, model.MsgPng, fields{
		FieldRopMin: "0", FieldRopMax: "300", FieldRpmMin: "0", FieldRpmMax: "300", FieldDocValue: "0.15",
	}))
	require.Equal(t, model.MsgRendered, reply.Type)

	raw, err := base64.StdEncoding.DecodeString(reply.Content)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}

func TestHubHandleErrors(t *testing.T) {
	h := NewHub(config.Default())
	assert.Equal(t, model.MsgError, h.handle(model.Msg{Type: "start"}).Type)
	assert.Equal(t, model.MsgError, h.handle(model.Msg{Type: model.MsgPlot, Content: "{"}).Type)
	// 零区间无法绘制图片
	reply := h.handle(plotMsg(t, model.MsgPng, fields{
		FieldRopMin: "5", FieldRopMax: "5", FieldRpmMin: "0", FieldRpmMax: "300", FieldDocValue: "0.15",
	}))
	assert.Equal(t, model.MsgError, reply.Type)
}
