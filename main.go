package main

import (
	"docchart/config"
	"docchart/server"
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

func main() {
	path := flag.String("config", config.DefaultPath, "path of the ini config file")
	flag.Parse()

	cfg := config.Load(*path)
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	s := server.NewServer(cfg, upgrader)
	if err := s.Serve(); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
