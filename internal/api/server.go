package api

import (
	"context"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/config"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/storage"
	"serwer-dostepu/internal/websocket"
)

type Server struct {
	config  *config.Config
	store   database.Store
	storage *storage.LocalStorage
	wsHub   *websocket.Hub
}

func NewServer(cfg *config.Config, store database.Store, storage *storage.LocalStorage, wsHub *websocket.Hub) *Server {
	return &Server{
		config:  cfg,
		store:   store,
		storage: storage,
		wsHub:   wsHub,
	}
}

// resolver loads one snapshot; every check made while serving a request
// goes through the same one.
func (s *Server) resolver(ctx context.Context) (*access.Resolver, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return access.NewResolver(snap), nil
}
