package main

import (
	"errors"
	"fmt"
	"strings"

	"cover-builder-backend/internal/config"
	"cover-builder-backend/internal/database"
)

type commandContext struct {
	databaseURLFlag *string
}

func newCommandContext(databaseURLFlag *string) *commandContext {
	return &commandContext{databaseURLFlag: databaseURLFlag}
}

// databaseURL prefers --database-url over the environment and .env file.
func (c *commandContext) databaseURL() (string, error) {
	if c.databaseURLFlag != nil {
		if flag := strings.TrimSpace(*c.databaseURLFlag); flag != "" {
			return flag, nil
		}
	}
	cfg, err := config.Read()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", errors.New("no database configured; pass --database-url or set DATABASE_URL")
	}
	return cfg.DatabaseURL, nil
}

func (c *commandContext) withDB(fn func(*database.DB) error) error {
	url, err := c.databaseURL()
	if err != nil {
		return err
	}
	db, err := database.Open(url)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	return fn(db)
}
