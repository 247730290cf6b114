package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/longevitylab/gerograph/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	srv, err := server.NewServer()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer srv.Log.Sync()

	r := srv.SetupRouter()

	srv.Log.Info("starting server", "port", srv.Cfg.Server.Port)
	if err := r.Run(":" + srv.Cfg.Server.Port); err != nil {
		srv.Log.Fatal("server exited", "err", err)
	}
}
