package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dailylog/config"
	"dailylog/logger"

	"github.com/jackc/pgx/v5"
)

func main() {
	migrationsDir := flag.String("dir", "./database/migrations", "directory of ordered .sql files")
	flag.Parse()

	cfg, err := config.LoadServer()
	log := logger.New("dailylog-migrate", logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	files, err := os.ReadDir(*migrationsDir)
	if err != nil {
		log.Error("failed to read migrations", "dir", *migrationsDir, "error", err)
		os.Exit(1)
	}

	var sqlFiles []string
	for _, file := range files {
		if filepath.Ext(file.Name()) == ".sql" {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, file := range sqlFiles {
		log.Info("running migration", "file", file)

		content, err := os.ReadFile(filepath.Join(*migrationsDir, file))
		if err != nil {
			log.Error("failed to read file", "file", file, "error", err)
			os.Exit(1)
		}

		if _, err := conn.Exec(ctx, string(content)); err != nil {
			log.Error("migration failed", "file", file, "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("\nAll %d migrations completed!\n", len(sqlFiles))
}
