package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"cellheat/battery"
	"cellheat/calculator"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	params   *battery.Parameters
	batch    *calculator.BatchEvaluator
}

func NewServer(addr string, upgrader websocket.Upgrader, params *battery.Parameters, batch *calculator.BatchEvaluator) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		params:   params,
		batch:    batch,
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

	hub := NewHub(conn, s.params, s.batch)
	done := make(chan struct{})
	go hub.handleRequest()
	go func() {
		hub.handleResponse()
		close(done)
	}()

	hub.readLoop()
	<-done
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}
