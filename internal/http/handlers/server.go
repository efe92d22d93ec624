package handlers

import (
	"github.com/rogerio-castellano/rfid-pos/internal/device"
	"github.com/rogerio-castellano/rfid-pos/internal/logbook"
	"github.com/rogerio-castellano/rfid-pos/internal/models"
	"github.com/rogerio-castellano/rfid-pos/internal/pos"
	"github.com/rogerio-castellano/rfid-pos/internal/repo"
	"github.com/rogerio-castellano/rfid-pos/internal/scanner"
)

var (
	catalogRepo     repo.CatalogRepository
	transactionRepo repo.TransactionRepository
	userRepo        repo.UserRepository
	metricsRepo     repo.MetricsRepository

	terminal   *pos.Terminal
	channel    *device.Channel
	classifier *scanner.Classifier
	logs       *logbook.Book

	company models.CompanySettings
)

func SetCatalogRepo(r repo.CatalogRepository) {
	catalogRepo = r
}

func SetTransactionRepo(r repo.TransactionRepository) {
	transactionRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetTerminal(t *pos.Terminal) {
	terminal = t
}

func SetDeviceChannel(c *device.Channel) {
	channel = c
}

func SetClassifier(c *scanner.Classifier) {
	classifier = c
}

func SetLogbook(b *logbook.Book) {
	logs = b
}

func SetCompanySettings(c models.CompanySettings) {
	company = c
}
