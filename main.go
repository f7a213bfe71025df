package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"cellheat/battery"
	"cellheat/calculator"
	"cellheat/config"
	"cellheat/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	confPath := flag.String("conf", "conf/config.ini", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		log.Fatal(err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	params, err := battery.NewParameters(cfg.Battery)
	if err != nil {
		log.Fatal(err)
	}
	source := calculator.NewHeatSource(params, nil)
	batch := calculator.NewBatchEvaluator(source, cfg.Workers)
	defer batch.Stop()

	log.WithFields(log.Fields{
		"volume":  params.Volume(),
		"current": calculator.NewConstantCurrent(params).Current(0),
		"workers": batch.Workers(),
	}).Info("电池产热模型已加载")

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg.Addr, upgrader, params, batch)
	if err := s.Serve(); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
