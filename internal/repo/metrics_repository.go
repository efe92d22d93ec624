package repo

type TopCategory struct {
	Name      string `json:"name"`
	SoldCount int    `json:"sold_count"`
}

type Metrics struct {
	TotalProducts     int         `json:"total_products"`
	AvailableProducts int         `json:"available_products"`
	SoldProducts      int         `json:"sold_products"`
	TotalTransactions int         `json:"total_transactions"`
	Revenue           float64     `json:"revenue"`
	TopCategory       TopCategory `json:"top_category"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
