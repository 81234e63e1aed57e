package main

import (
	"log"

	"supplierboard/internal/config"
	"supplierboard/internal/server"
	"supplierboard/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := storage.Open(cfg.DBPath, cfg.CacheMaxEntries)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer db.Close()

	r := server.New(db, cfg)
	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
