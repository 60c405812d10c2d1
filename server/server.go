package server

import (
	"bytes"
	"docchart/calculator"
	"docchart/chart"
	"docchart/config"
	"docchart/model"
	"docchart/render"
	"embed"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

//go:embed static/index.html
var static embed.FS

type Server struct {
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewServer(cfg *config.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	hub := NewHub(s.cfg)
	hub.conn = conn
	defer hub.stop()
	go hub.handleRequest()
	go hub.handleResponse()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("err: ", err)
			}
			return
		}
		hub.msg <- msg
	}
}

// serveFigure 接收 JSON 格式的绘图参数，返回 Plotly 图表数据
func (s *Server) serveFigure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, err := DecodeParams(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chart.Plot(p, s.cfg.Chart)); err != nil {
		log.Println("err: ", err)
	}
}

// servePng 参数取自查询字符串，字段名与页面表单 id 相同
func (s *Server) servePng(w http.ResponseWriter, r *http.Request) {
	p := ParseParams(r.URL.Query().Get)
	var buf bytes.Buffer
	err := render.PNG(&buf, p, calculator.Compute(p), render.OptionsFrom(s.cfg.Render))
	switch {
	case errors.Is(err, render.ErrDegenerateRange), errors.Is(err, render.ErrInvalidDoc):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.WithField("params", p).Error("render png: ", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		log.Println("err: ", err)
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		log.Println("err: ", err)
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/api/figure", s.serveFigure)
	mux.HandleFunc("/api/chart.png", s.servePng)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.cfg.Server.Addr).Info("doc chart server listening")
	return http.ListenAndServe(s.cfg.Server.Addr, s.Handler())
}
