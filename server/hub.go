package server

import (
	"bytes"
	"docchart/calculator"
	"docchart/chart"
	"docchart/config"
	"docchart/model"
	"docchart/render"
	"encoding/base64"
	"encoding/json"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Hub serves one websocket connection. Requests are handled one at a time in
// arrival order, replies are written by a separate goroutine.
type Hub struct {
	cfg  *config.Config
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(cfg *config.Config) *Hub {
	return &Hub{
		cfg:   cfg,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.Println("err: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			select {
			case h.reply <- h.handle(msg):
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) stop() {
	close(h.done)
}

func (h *Hub) handle(msg model.Msg) model.Msg {
	switch msg.Type {
	case model.MsgPlot:
		p, err := decodeFields(msg.Content)
		if err != nil {
			return errorMsg(err)
		}
		data, err := json.Marshal(chart.Plot(p, h.cfg.Chart))
		if err != nil {
			return errorMsg(err)
		}
		return model.Msg{Type: model.MsgPlotted, Content: string(data)}
	case model.MsgPng:
		p, err := decodeFields(msg.Content)
		if err != nil {
			return errorMsg(err)
		}
		var buf bytes.Buffer
		if err := render.PNG(&buf, p, calculator.Compute(p), render.OptionsFrom(h.cfg.Render)); err != nil {
			return errorMsg(err)
		}
		return model.Msg{Type: model.MsgRendered, Content: base64.StdEncoding.EncodeToString(buf.Bytes())}
	default:
		log.WithField("type", msg.Type).Warn("no such type")
		return model.Msg{Type: model.MsgError, Content: "no such type: " + msg.Type}
	}
}

func decodeFields(content string) (model.Params, error) {
	f := fields{}
	if err := json.Unmarshal([]byte(content), &f); err != nil {
		return model.Params{}, err
	}
	return ParseParams(f.get), nil
}

func errorMsg(err error) model.Msg {
	log.Println("err: ", err)
	return model.Msg{Type: model.MsgError, Content: err.Error()}
}
