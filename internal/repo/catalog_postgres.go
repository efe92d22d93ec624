package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

type PostgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) Create(p models.Product) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	p.Status = models.StatusActive
	if p.Category == "" {
		p.Category = "N/A"
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().Format(time.RFC3339)
	}

	query := `INSERT INTO products (tag_id, name, code, price, category, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (tag_id) DO NOTHING`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.TagID, p.Name, p.Code, p.Price, p.Category, p.Status, p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return models.Product{}, ErrDuplicateTag
	}
	return p, nil
}

func (r *PostgresCatalogRepository) GetByTag(tagID string) (models.Product, error) {
	query := `SELECT tag_id, name, code, price, category, status, created_at FROM products WHERE tag_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, tagID).
		Scan(&p.TagID, &p.Name, &p.Code, &p.Price, &p.Category, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrTagNotFound
	}
	return p, err
}

func (r *PostgresCatalogRepository) GetAll() ([]models.Product, error) {
	query := `SELECT tag_id, name, code, price, category, status, created_at FROM products ORDER BY created_at, tag_id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.TagID, &p.Name, &p.Code, &p.Price, &p.Category, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresCatalogRepository) Filter(cf CatalogFilter) ([]models.Product, int, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, 0, err
	}

	var filtered []models.Product
	for _, p := range all {
		if matchesFilter(p, cf) {
			filtered = append(filtered, p)
		}
	}

	if cf.Offset != nil && *cf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}
	start := 0
	if cf.Offset != nil {
		start = clamp(*cf.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if cf.Limit != nil && *cf.Limit > 0 {
		end = clamp(start+*cf.Limit, start, len(filtered))
	}
	return filtered[start:end], len(filtered), nil
}

// MarkSold disables every listed tag inside one transaction; any tag that is
// missing or already disabled rolls the whole batch back.
func (r *PostgresCatalogRepository) MarkSold(tagIDs []string) error {
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
	return tx.Commit()
}

func markSoldTx(ctx context.Context, tx *sql.Tx, tagIDs []string) error {
	for _, tag := range tagIDs {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET status = $1 WHERE tag_id = $2 AND status = $3`,
			models.StatusDisabled, tag, models.StatusActive)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return ErrTagNotActive
		}
	}
	return nil
}

func (r *PostgresCatalogRepository) Delete(tagID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE tag_id = $1`, tagID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *PostgresCatalogRepository) ReplaceAll(products []models.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (tag_id, name, code, price, category, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.TagID, p.Name, p.Code, p.Price, p.Category, p.Status, p.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresCatalogRepository) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM products`)
	return err
}
