package server

import (
	"bytes"
	"docchart/config"
	"docchart/model"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height, cfg.Render.DPI = 4, 3, 40
	ts := httptest.NewServer(NewServer(cfg, websocket.Upgrader{}).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServeIndex(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, id := range []string{FieldRopMin, FieldRopMax, FieldRpmMin, FieldRpmMax, FieldDocValue, "plot-button", `id="plot"`} {
		assert.Contains(t, string(body), id)
	}

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeFigure(t *testing.T) {
	ts := newTestServer(t)
	body := `{"rop_min":0,"rop_max":100,"rpm_min":0,"rpm_max":200,"doc_value":0.5}`
	resp, err := http.Post(ts.URL+"/api/figure", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fig struct {
		Data []struct {
			X          []float64       `json:"x"`
			Colorscale [][]interface{} `json:"colorscale"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fig))
	require.Len(t, fig.Data, 1)
	assert.Len(t, fig.Data[0].X, model.Points)
	assert.Equal(t, []interface{}{0.0005, "limegreen"}, fig.Data[0].Colorscale[1])
}

func TestServeFigureMissingAndNotANumber(t *testing.T) {
	ts := newTestServer(t)
	for _, body := range []string{
		`{"rop_min":0,"rop_max":100,"rpm_max":200,"doc_value":0.1}`,
		`{"rop_min":0,"rop_max":100,"rpm_min":"abc","rpm_max":200,"doc_value":0.1}`,
	} {
		resp, err := http.Post(ts.URL+"/api/figure", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var fig struct {
			Data []struct {
				X []*float64 `json:"x"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &fig))
		require.Len(t, fig.Data[0].X, model.Points)
		// rpm 轴全部为 NaN，编码为 null
		for _, x := range fig.Data[0].X {
			assert.Nil(t, x, body)
		}
	}
}

func TestServeFigureBadRequest(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/figure", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/figure")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServePng(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/chart.png?rop-min=0&rop-max=300&rpm-min=0&rpm-max=300&doc-value=0.15")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)

	resp, err = http.Get(ts.URL + "/api/chart.png?rop-min=0&rop-max=300&rpm-min=0&rpm-max=abc&doc-value=0.15")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServeWs(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(plotMsg(t, model.MsgPlot, fields{
		FieldRopMin: "0", FieldRopMax: "100", FieldRpmMin: "0", FieldRpmMax: "200", FieldDocValue: "1",
	})))
	require.NoError(t, conn.WriteJSON(model.Msg{Type: "stop"}))

	var reply model.Msg
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.MsgPlotted, reply.Type)
	assert.Contains(t, reply.Content, `"type":"contour"`)

	// 按到达顺序回复
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.MsgError, reply.Type)
}
