package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

// PostgresSaleRepository finalizes a sale in a single database transaction:
// every sold tag flips to disabled and the transaction record is inserted, or
// nothing is written at all.
type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

func (r *PostgresSaleRepository) CommitSale(t models.Transaction, tagIDs []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := markSoldTx(ctx, tx, tagIDs); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}
