// Command migrate applies the remote store schema to the PostgreSQL
// database named by the client configuration (-r or QRCONTACTS_REMOTE_DSN).
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if cfg.RemoteDSN == "" {
		log.Fatal("remote DSN is not configured")
	}

	db, err := client.OpenDB(cfg.RemoteDSN)
	if err != nil {
		log.Fatalf("open remote: %v", err)
	}
	defer db.Close()

	if err := client.RunRemoteMigrations(ctx, db); err != nil {
		log.Printf("migrate: %v", err)
		return
	}

	log.Println("remote schema is up to date")
}
