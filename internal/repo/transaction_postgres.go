package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(t models.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertTransactionTx(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTransactionTx(ctx context.Context, tx *sql.Tx, t models.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, subtotal, tax_rate, tax_amount, total, date, tags_killed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Subtotal, t.TaxRate, t.TaxAmount, t.Total, t.Timestamp, t.TagsKilled)
	if err != nil {
		return err
	}
	for i, item := range t.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transaction_items (transaction_id, position, tag_id, name, code, price, category)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, i, item.TagID, item.Name, item.Code, item.Price, item.Category)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresTransactionRepository) GetAll() ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subtotal, tax_rate, tax_amount, total, date, tags_killed FROM transactions ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	byID := map[string]int{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Subtotal, &t.TaxRate, &t.TaxAmount, &t.Total, &t.Timestamp, &t.TagsKilled); err != nil {
			return nil, err
		}
		byID[t.ID] = len(transactions)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx,
		`SELECT transaction_id, tag_id, name, code, price, category
		 FROM transaction_items ORDER BY transaction_id, position`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var txID string
		var p models.Product
		if err := itemRows.Scan(&txID, &p.TagID, &p.Name, &p.Code, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		p.Status = models.StatusDisabled
		if i, ok := byID[txID]; ok {
			transactions[i].Items = append(transactions[i].Items, p)
		}
	}
	return transactions, itemRows.Err()
}

func (r *PostgresTransactionRepository) GetByID(id string) (models.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var t models.Transaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, subtotal, tax_rate, tax_amount, total, date, tags_killed FROM transactions WHERE id = $1`, id).
		Scan(&t.ID, &t.Subtotal, &t.TaxRate, &t.TaxAmount, &t.Total, &t.Timestamp, &t.TagsKilled)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_id, name, code, price, category FROM transaction_items WHERE transaction_id = $1 ORDER BY position`, id)
	if err != nil {
		return models.Transaction{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.TagID, &p.Name, &p.Code, &p.Price, &p.Category); err != nil {
			return models.Transaction{}, err
		}
		p.Status = models.StatusDisabled
		t.Items = append(t.Items, p)
	}
	return t, rows.Err()
}

func (r *PostgresTransactionRepository) ReplaceAll(transactions []models.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transaction_items`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return err
	}
	for _, t := range transactions {
		if err := insertTransactionTx(ctx, tx, t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresTransactionRepository) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM transaction_items`); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions`)
	return err
}
