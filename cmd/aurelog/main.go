package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aurelog/aurelog/internal/api"
	"github.com/aurelog/aurelog/internal/db"
	"github.com/aurelog/aurelog/internal/security"
	"github.com/aurelog/aurelog/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const secretKeyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	dbPath := getEnv("DB_PATH", filepath.Join("data", "aurelog.db"))
	port := getEnv("PORT", "8080")

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("secret key init failed: %v", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repos := db.NewRepositories(database)
	handler := api.NewHandler(repos, secretKey, location)

	// One reconciliation per process start: close or carry forward any
	// attack left open since the last session.
	continuity := services.NewContinuityService(repos.DailyRecords, repos.Settings, location)
	if err := continuity.Reconcile(time.Now().In(location)); err != nil {
		log.Fatalf("session reconciliation failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Aurelog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Aurelog listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// resolveSecretKey reads SECRET_KEY or, when unset, generates an ephemeral
// key. Tokens signed with an ephemeral key do not survive a restart.
func resolveSecretKey() (string, error) {
	if value := os.Getenv("SECRET_KEY"); value != "" {
		return value, nil
	}

	generated, err := security.RandomString(32, secretKeyAlphabet)
	if err != nil {
		return "", err
	}
	log.Print("SECRET_KEY not set, using an ephemeral key; sessions reset on restart")
	return generated, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
