// server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/retroline/bbs/bbs"
)

func main() {
	// Get the database connection string from an environment variable.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("DATABASE_URL environment variable is not set")
		dbURL = "user=bbs password=bbs host=localhost dbname=bbs" // Default for local development
	}

	// Initialize the database connection.
	db, err := bbs.NewDatabase(dbURL)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	if err := db.CreateTables(); err != nil {
		log.Fatalf("Could not create tables: %v", err)
	}

	// Redis is optional: when configured it caches user lookups, and
	// SNAPSHOT_STORE=redis routes channel snapshots through it too.
	var cache *bbs.Cache
	var port bbs.PersistencePort = db
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = bbs.NewCache(redisURL)
		if err != nil {
			log.Fatalf("Could not initialize redis: %v", err)
		}
		log.Println("Successfully connected to redis.")
		if os.Getenv("SNAPSHOT_STORE") == "redis" {
			port = cache
			log.Println("Channel snapshots will be stored in redis.")
		}
	}

	// Create the board handler, injecting the dependencies.
	handler := bbs.NewHandlers(db, port, cache)

	// Create a new ServeMux and register the board routes.
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	// Start the server.
	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	log.Printf("Starting board server on %s", addr)
	sessionHandler := handler.Session.LoadAndSave(mux)
	svr := &http.Server{
		Addr:    addr,
		Handler: sessionHandler,
	}

	if err := svr.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
