package main

import (
	"flag"
	"log"
	"os"

	"buildbrawl/internal/config"
	"buildbrawl/internal/server"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("config load failed, using defaults: %v", err)
		} else {
			cfg = loaded
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	srv := server.New(cfg)
	log.Println("starting buildbrawl server...")
	if err := srv.Start(); err != nil {
		log.Println("server failed to start:", err)
		os.Exit(1)
	}
}
