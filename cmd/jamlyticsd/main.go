package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"jamlytics-backend/lib/configutil"
	"jamlytics-backend/lib/scrapers/itchio"
	"jamlytics-backend/lib/serviceutil"
	"jamlytics-backend/lib/telemetry"
	"jamlytics-backend/services/analyzer"
	"jamlytics-backend/services/analyzer/db"

	"github.com/dgraph-io/badger/v4"
)

type RateLimitConfig struct {
	// requests per client ip per minute, 0 disables limiting
	PerMinute int `json:"per_minute"`
}

type Config struct {
	Port    int  `json:"port"`
	Verbose bool `json:"verbose"`
	// empty means an in-memory cache
	CachePath       string `json:"cache_path"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
	MaxEncodedSize  int    `json:"max_encoded_size"`
	// sqlite database holding the analyzed-url log
	Database string `json:"database"`
	// overridable for local testing against a fixture server
	ItchBaseUrl string `json:"itch_base_url"`
	// absolute site prefix used in sitemap <loc> entries
	PublicUrl string          `json:"public_url"`
	RateLimit RateLimitConfig `json:"rate_limit"`
}

func readConfig() Config {
	config, err := configutil.ReadRecursively[Config]("jamlytics.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("read config", err)
	}
	if config.Port == 0 {
		config.Port = 8230
	}
	if config.CacheTTLSeconds == 0 {
		config.CacheTTLSeconds = 30 * 60
	}
	if config.Database == "" {
		config.Database = "urllog.db"
	}
	return config
}

func main() {
	config := readConfig()
	telemetry.InitSlog(config.Verbose)

	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "jamlyticsd")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	badgerOpts := badger.DefaultOptions(config.CachePath)
	if config.CachePath == "" {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	cache, err := badger.Open(badgerOpts)
	if err != nil {
		serviceutil.Fatal("open aggregate cache", err)
	}
	defer cache.Close()

	sqlite, err := sql.Open("sqlite", config.Database)
	if err != nil {
		serviceutil.Fatal("open url log database", err)
	}
	defer sqlite.Close()
	_, err = sqlite.ExecContext(ctx, db.Schema)
	if err != nil {
		serviceutil.Fatal("apply url log schema", err)
	}

	client, err := itchio.NewClient(itchio.ClientOptions{
		BaseUrl: config.ItchBaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("create itchio client", err)
	}

	service := analyzer.NewService(client, cache, db.New(sqlite), analyzer.Options{
		CacheTTL:       time.Duration(config.CacheTTLSeconds) * time.Second,
		MaxEncodedSize: config.MaxEncodedSize,
	})

	router := newRouter(service, config)

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", config.Port),
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("listening...", "port", config.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		serviceutil.Fatal(fmt.Sprintf("failed to listen on port %d", config.Port), err)
	}
}
