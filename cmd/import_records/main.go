package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/healthstats/internal/config"
	"github.com/2beens/healthstats/internal/db"
	"github.com/2beens/healthstats/internal/health"
	"github.com/2beens/healthstats/internal/logging"
	"github.com/2beens/healthstats/internal/telemetry/metrics"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// import_records reads a JSON array of raw health records (e.g. an export from a phone app)
// and appends the valid ones to the configured storage.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional .env file with secrets, loaded into env vars")
	inputPath := flag.String("input", "", "path of the JSON file with the records to import")
	dryRun := flag.Bool("dry-run", false, "only validate the records, do not store them")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("failed to load env file [%s]: %s\n", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogLevel:    cfg.LogLevel,
		LogToStdout: true,
	})

	if *inputPath == "" {
		log.Fatalln("input file not set, use -input")
	}

	raws, err := readRawRecords(*inputPath)
	if err != nil {
		log.Fatalf("read records to import: %s", err)
	}
	log.Infof("read %d records from [%s]", len(raws), *inputPath)

	if *dryRun {
		valid := 0
		for i, raw := range raws {
			if _, err := health.Normalize(raw); err != nil {
				log.Warnf("record at index %d rejected: %s", i, err)
				continue
			}
			valid++
		}
		log.Infof("dry run: %d valid, %d rejected", valid, len(raws)-valid)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var service *health.Service
	metricsManager := metrics.NewManager("import", "records", prometheus.NewRegistry())
	switch cfg.Storage {
	case config.StoragePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     os.Getenv("HEALTHSTATS_POSTGRES_USER"),
			DBPassword: os.Getenv("HEALTHSTATS_POSTGRES_PASS"),
			MaxConns:   2,
		})
		if err != nil {
			log.Fatalf("new db pool: %s", err)
		}
		defer dbPool.Close()

		repo := health.NewPsqlRepo(dbPool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("ensure db schema: %s", err)
		}
		service = health.NewService(repo, metricsManager)
	default:
		repo, err := health.NewFileRepo(cfg.RecordsFilePath)
		if err != nil {
			log.Fatalf("new file repo: %s", err)
		}
		service = health.NewService(repo, metricsManager)
	}

	result, err := service.Import(ctx, raws)
	if err != nil {
		log.Errorf("import failed after %d records: %s", result.Imported, err)
		os.Exit(1)
	}

	log.Infof("import done: %d imported, %d rejected", result.Imported, result.Rejected)
}

func readRawRecords(path string) ([]health.RawRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []health.RawRecord
	if err := json.Unmarshal(content, &raws); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}

	return raws, nil
}
