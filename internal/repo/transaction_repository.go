package repo

import (
	"errors"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

// ErrTransactionNotFound is returned when no transaction has the requested id.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository stores finalized sales. Records are append-only;
// there is no update operation.
type TransactionRepository interface {
	Create(t models.Transaction) error
	GetAll() ([]models.Transaction, error)
	GetByID(id string) (models.Transaction, error)
	ReplaceAll(transactions []models.Transaction) error
	Clear() error
}
