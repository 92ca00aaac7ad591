package main

import (
	"log"

	"aidetect-backend/internal/shared/config"
	"aidetect-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting AI detection API on %s (provider=%s model=%s)", addr, cfg.LLMProvider, cfg.LLMModel)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
