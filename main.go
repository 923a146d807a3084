package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"socialite-server/db"
	"socialite-server/handlers"
	"socialite-server/storage"
	"socialite-server/tasks"
)

func main() {
	conn, err := db.Connect()
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}

	err = db.MigrationsUp(conn)
	if err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	store := db.NewStore(conn)
	uploader := storage.NewUploader()
	scheduler := tasks.NewScheduler(store.Posts)

	err = scheduler.RearmPending()
	if err != nil {
		log.Fatal("Error re-arming scheduled posts: ", err)
	}

	api := handlers.NewApi(store, uploader, scheduler)

	if os.Getenv("GOENV") == "development" {
		log.Println("In development mode.")
	}

	// Get port from the environment variable or default to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go startServer(port, InitRoutes(api))
	log.Println("Started server on port " + port)

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigTermChan

	for {
		n := scheduler.NumActivePublishes()
		if n == 0 {
			break
		}
		log.Printf("Waiting for %d scheduled publishes to finish...\n", n)
		time.Sleep(1 * time.Second)
	}

	os.Exit(0)
}

func startServer(port string, routes *mux.Router) {
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), routes)
	if err != nil {
		log.Fatalf("Failed to start server on port %s: %v", port, err)
	}
}
