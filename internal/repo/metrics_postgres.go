package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE status = $1`, models.StatusActive).Scan(&m.AvailableProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE status = $1`, models.StatusDisabled).Scan(&m.SoldProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM transactions`).Scan(&m.TotalTransactions, &m.Revenue)

	_ = r.db.QueryRowContext(ctx, `
		SELECT category, COUNT(*) as cnt
		FROM transaction_items
		GROUP BY category
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.TopCategory.Name, &m.TopCategory.SoldCount)

	return m, nil
}
