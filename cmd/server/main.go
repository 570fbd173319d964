// @title           Item Access API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"serwer-dostepu/internal/api"
	"serwer-dostepu/internal/config"
	"serwer-dostepu/internal/database/backend"
	"serwer-dostepu/internal/storage"
	"serwer-dostepu/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "serwer-dostepu/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	store, release, err := backend.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Nie można otworzyć magazynu danych: %v", err)
	}
	defer release()
	log.Printf("Pomyślnie otwarto magazyn danych (%s)", cfg.DB.Driver)

	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Nie można zainicjować local storage: %v", err)
	}
	log.Printf("Treści dokumentów będą czytane z: %s", cfg.Storage.Path)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	server := api.NewServer(cfg, store, localStorage, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://"+cfg.AppHost+"/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Serwer dostępu działa! Dokumentacja dostępna pod /swagger/index.html"))
	})

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/v1", server.Routes())

	log.Printf("Uruchamianie serwera na %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
