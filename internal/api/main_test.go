package api

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"serwer-dostepu/internal/auth"
	"serwer-dostepu/internal/config"
	"serwer-dostepu/internal/database/memory"
	"serwer-dostepu/internal/database/storetest"
	"serwer-dostepu/internal/models"
	"serwer-dostepu/internal/storage"
	"serwer-dostepu/internal/websocket"
)

const testSecret = "api_test_secret"

var (
	testServer  *Server
	testStore   *memory.Store
	testStorage *storage.LocalStorage
	testHub     *websocket.Hub
	annaToken   string
	bobToken    string
	cedricToken string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	fixture, err := storetest.Hierarchy()
	if err != nil {
		log.Fatalf("Could not parse fixture: %s", err)
	}
	testStore, err = memory.FromFixture(ctx, fixture)
	if err != nil {
		log.Fatalf("Could not seed store: %s", err)
	}

	tempDir, err := os.MkdirTemp("", "api-storage-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}

	testStorage, err = storage.NewLocalStorage(tempDir)
	if err != nil {
		log.Fatalf("Could not create local storage: %s", err)
	}
	snap, err := testStore.LoadSnapshot(ctx)
	if err != nil {
		log.Fatalf("Could not load snapshot: %s", err)
	}
	reading, _ := snap.Item("reading")
	if err := testStorage.Save(reading, strings.NewReader("Hello, reader!")); err != nil {
		log.Fatalf("Could not save content: %s", err)
	}

	testHub = websocket.NewHub()
	go testHub.Run()

	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	testServer = NewServer(cfg, testStore, testStorage, testHub)

	for id, token := range map[string]*string{"anna-id": &annaToken, "bob-id": &bobToken, "cedric-id": &cedricToken} {
		*token, err = auth.GenerateJWT(&models.Member{ID: id, Name: id}, testSecret)
		if err != nil {
			log.Fatalf("Could not generate token: %s", err)
		}
	}

	code := m.Run()
	os.RemoveAll(tempDir)
	os.Exit(code)
}
