package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/rfid-pos/internal/auth"
	"github.com/rogerio-castellano/rfid-pos/internal/config"
	"github.com/rogerio-castellano/rfid-pos/internal/db"
	"github.com/rogerio-castellano/rfid-pos/internal/device"
	poshttp "github.com/rogerio-castellano/rfid-pos/internal/http"
	"github.com/rogerio-castellano/rfid-pos/internal/http/handlers"
	rl "github.com/rogerio-castellano/rfid-pos/internal/http/rate_limiter"
	"github.com/rogerio-castellano/rfid-pos/internal/logbook"
	"github.com/rogerio-castellano/rfid-pos/internal/models"
	"github.com/rogerio-castellano/rfid-pos/internal/pos"
	"github.com/rogerio-castellano/rfid-pos/internal/repo"
	"github.com/rogerio-castellano/rfid-pos/internal/scanner"
	"github.com/rogerio-castellano/rfid-pos/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Could not create logger: %v", err)
	}
	defer logger.Sync()

	auth.SetSecret(cfg.JWTSecret)
	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	logs := logbook.New(logger)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("❌ Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		logs.SetRedis(rdb)
	}

	var (
		catalogRepo     repo.CatalogRepository
		transactionRepo repo.TransactionRepository
		userRepo        repo.UserRepository
		metricsRepo     repo.MetricsRepository
		committer       pos.SaleCommitter
		persister       pos.Persister
	)

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		catalogRepo = repo.NewPostgresCatalogRepository(database)
		transactionRepo = repo.NewPostgresTransactionRepository(database)
		userRepo = repo.NewPostgresUserRepository(database)
		metricsRepo = repo.NewPostgresMetricsRepository(database)
		committer = repo.NewPostgresSaleRepository(database)
	} else {
		memCatalog := repo.NewMemoryCatalogRepository()
		memTransactions := repo.NewMemoryTransactionRepository()
		memMetrics := repo.NewInMemoryMetricsRepository()
		memMetrics.SetRepositories(memCatalog, memTransactions)

		store := snapshot.NewStore(cfg.SnapshotPath, logger)
		doc, err := store.Load()
		if err != nil {
			log.Fatalf("❌ Could not load snapshot %s: %v", cfg.SnapshotPath, err)
		}
		if err := memCatalog.ReplaceAll(doc.Products); err != nil {
			log.Fatalf("❌ Could not restore catalog: %v", err)
		}
		if err := memTransactions.ReplaceAll(doc.Transactions); err != nil {
			log.Fatalf("❌ Could not restore transactions: %v", err)
		}
		logs.Replace(doc.Logs)

		snapCommitter := snapshot.NewCommitter(store, memCatalog, memTransactions, logs)

		catalogRepo = memCatalog
		transactionRepo = memTransactions
		userRepo = repo.NewInMemoryUserRepository()
		metricsRepo = memMetrics
		committer = snapCommitter
		persister = snapCommitter
	}

	// The channel's sink and the terminal refer to each other; the channel
	// delivers no frames until Connect, by which time terminal is set.
	var terminal *pos.Terminal
	channel := device.NewChannel(device.OpenSerial, cfg.Debounce(), func(tag string) {
		if _, err := terminal.Scan(tag, pos.SourceSerial); err != nil {
			logger.Warn("serial scan failed", zap.String("tag", tag), zap.Error(err))
		}
	}, logger)

	terminal = pos.NewTerminal(catalogRepo, transactionRepo, committer, channel, logs, pos.Settings{
		TaxRate:       cfg.TaxRate,
		KillAfterSale: cfg.KillAfterSale,
		KillPassword:  cfg.KillPassword,
	}, logger)
	if persister != nil {
		terminal.SetPersister(persister)
	}

	classifier := scanner.New(cfg.Debounce(), func(raw string, mode scanner.Mode) {
		src := pos.SourceManual
		if mode == scanner.ModeReaderBurst {
			src = pos.SourceReader
		}
		if _, err := terminal.Scan(raw, src); err != nil {
			logger.Warn("scan failed", zap.String("tag", raw), zap.Error(err))
		}
	}, logger)

	handlers.SetCatalogRepo(catalogRepo)
	handlers.SetTransactionRepo(transactionRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetMetricsRepo(metricsRepo)
	handlers.SetTerminal(terminal)
	handlers.SetDeviceChannel(channel)
	handlers.SetClassifier(classifier)
	handlers.SetLogbook(logs)
	handlers.SetCompanySettings(models.CompanySettings{
		Name:          cfg.CompanyName,
		Address:       cfg.CompanyAddress,
		Phone:         cfg.CompanyPhone,
		Email:         cfg.CompanyEmail,
		TaxRate:       cfg.TaxRate,
		InvoicePrefix: cfg.InvoicePrefix,
		Terms:         cfg.InvoiceTerms,
	})

	if cfg.SerialPort != "" {
		if err := channel.Connect(cfg.SerialPort, cfg.SerialBaud); err != nil {
			log.Printf("could not open serial port %s: %v", cfg.SerialPort, err)
		}
	}
	defer channel.Disconnect()

	r := poshttp.NewRouter()
	log.Printf("✅ Server running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
