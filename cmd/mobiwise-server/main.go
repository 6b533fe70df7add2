// Package main MobiWise API Server
//
//	@title			MobiWise API
//	@version		1.0
//	@description	Conversational mobile-phone shopping assistant backed by Gemini
//
//	@contact.name	API Support
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
package main

import (
	"log"

	_ "mobiwise/docs" // This imports the docs package to initialize swagger
	"mobiwise/internal/config"
	"mobiwise/internal/server"
)

func main() {
	log.Println("Starting MobiWise Server...")

	cfg := config.Load()
	srv := server.NewServer(cfg)

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
