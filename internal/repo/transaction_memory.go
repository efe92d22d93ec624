package repo

import (
	"sync"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

type MemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions []models.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		transactions: []models.Transaction{},
	}
}

func (r *MemoryTransactionRepository) Create(t models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = append(r.transactions, t)
	return nil
}

func (r *MemoryTransactionRepository) GetAll() ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out, nil
}

func (r *MemoryTransactionRepository) GetByID(id string) (models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, ErrTransactionNotFound
}

func (r *MemoryTransactionRepository) ReplaceAll(transactions []models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = make([]models.Transaction, len(transactions))
	copy(r.transactions, transactions)
	return nil
}

func (r *MemoryTransactionRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = []models.Transaction{}
	return nil
}
