package repo

type InMemoryMetricsRepository struct {
	catalogRepo     CatalogRepository
	transactionRepo TransactionRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(
	catalogRepo CatalogRepository,
	transactionRepo TransactionRepository,
) {
	i.catalogRepo = catalogRepo
	i.transactionRepo = transactionRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	products, err := i.catalogRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)
	for _, p := range products {
		if p.Available() {
			m.AvailableProducts++
		} else {
			m.SoldProducts++
		}
	}

	transactions, err := i.transactionRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalTransactions = len(transactions)

	soldByCategory := map[string]int{}
	for _, t := range transactions {
		m.Revenue += t.Total
		for _, item := range t.Items {
			soldByCategory[item.Category]++
			if soldByCategory[item.Category] > m.TopCategory.SoldCount {
				m.TopCategory.Name = item.Category
				m.TopCategory.SoldCount = soldByCategory[item.Category]
			}
		}
	}

	return m, nil
}
