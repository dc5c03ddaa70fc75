// Command initdb creates the database schema and seeds the bootstrap
// data: the admin account from configuration and a handful of sample
// guest parties so the invitation can be exercised right away.
// Run once before starting the server for the first time.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rfuentes/event-invitation/internal/config"
	"github.com/rfuentes/event-invitation/internal/database"
	"github.com/rfuentes/event-invitation/internal/ledger"
	"github.com/rfuentes/event-invitation/internal/repository"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS invitados (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		uuid CHAR(36) NOT NULL,
		codigo VARCHAR(50) NOT NULL,
		nombres VARCHAR(255) NOT NULL,
		max_adultos INT NOT NULL DEFAULT 0,
		max_ninos INT NOT NULL DEFAULT 0,
		cantidad_adultos INT NOT NULL DEFAULT 0,
		cantidad_ninos INT NOT NULL DEFAULT 0,
		estado ENUM('pendiente','confirmado','rechazado') NOT NULL DEFAULT 'pendiente',
		confirmacion TEXT NULL,
		fecha_confirmacion DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_invitados_uuid (uuid),
		UNIQUE KEY uq_invitados_codigo (codigo)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_admin_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		admin_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_admin (admin_id),
		CONSTRAINT fk_refresh_tokens_admin FOREIGN KEY (admin_id) REFERENCES admin_users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

type sampleGuest struct {
	code        string
	displayName string
	maxAdults   int
	maxChildren int
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("create schema: %v", err)
		}
	}
	log.Print("schema ready")

	admins := repository.NewAdminRepo(db)
	if _, err := admins.GetByUsername(ctx, cfg.AdminUsername); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Fatalf("lookup admin: %v", err)
		}
		if _, err := admins.Create(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("admin account created: %s", cfg.AdminUsername)
	} else {
		log.Printf("admin account already exists: %s", cfg.AdminUsername)
	}

	guests := repository.NewGuestRepo(db)
	existing, err := guests.ListAll(ctx)
	if err != nil {
		log.Fatalf("list guests: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("%d guests already present; skipping samples", len(existing))
		return
	}

	samples := []sampleGuest{
		{code: fmt.Sprintf("%s-001", cfg.CodePrefix), displayName: "Ronald Fuentes y Deisy Miranda", maxAdults: 2},
		{code: fmt.Sprintf("%s-002", cfg.CodePrefix), displayName: "Juan Perez y Maria Garcia", maxAdults: 2, maxChildren: 1},
		{code: fmt.Sprintf("%s-003", cfg.CodePrefix), displayName: "Carlos Rodriguez", maxAdults: 1},
	}
	for _, s := range samples {
		g, err := ledger.NewGuest(s.displayName, s.maxAdults, s.maxChildren, s.code, uuid.NewString())
		if err != nil {
			log.Fatalf("build sample guest %s: %v", s.code, err)
		}
		if err := guests.Create(ctx, &g); err != nil {
			log.Fatalf("create sample guest %s: %v", s.code, err)
		}
	}
	log.Printf("%d sample guests created", len(samples))
}
