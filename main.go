package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/AndreKrottje-Dev/Gerda2/internal/catalog"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func openStore(ctx context.Context, cfg config) (store.Store, error) {
	if cfg.StoreDriver == "sqlite" {
		return store.OpenSQLite(cfg.SQLitePath)
	}
	return store.OpenPostgres(ctx, cfg.DBURL)
}

func main() {
	log.SetPrefix("gerda: ")
	log.SetFlags(0)

	// .env is optional for the server; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s store: %v\n", cfg.StoreDriver, err)
		os.Exit(1)
	}
	defer st.Close()
	fmt.Printf("%s store ready!\n", cfg.StoreDriver)

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	h := newHandler(st, cat, cfg.StreakTolerance)

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	fmt.Printf("Listening on %s\n", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
