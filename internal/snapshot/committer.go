package snapshot

import (
	"github.com/rogerio-castellano/rfid-pos/internal/logbook"
	"github.com/rogerio-castellano/rfid-pos/internal/models"
	"github.com/rogerio-castellano/rfid-pos/internal/repo"
)

// Committer finalizes sales for the in-memory deployment. The durable file
// write is the commit point: the post-sale state is staged and written first,
// and only then applied to the in-memory repositories, which cannot fail after
// validation. A failed write leaves catalog, transactions and cart untouched.
// All mutations run on the terminal lock, so the stage-write-apply sequence
// never interleaves with a catalog edit.
type Committer struct {
	store        *Store
	catalog      repo.CatalogRepository
	transactions repo.TransactionRepository
	logs         *logbook.Book
}

func NewCommitter(store *Store, catalog repo.CatalogRepository, transactions repo.TransactionRepository, logs *logbook.Book) *Committer {
	return &Committer{
		store:        store,
		catalog:      catalog,
		transactions: transactions,
		logs:         logs,
	}
}

func (c *Committer) CommitSale(t models.Transaction, tagIDs []string) error {
	staged, err := c.catalog.GetAll()
	if err != nil {
		return err
	}

	byTag := make(map[string]int, len(staged))
	for i, p := range staged {
		byTag[p.TagID] = i
	}
	for _, tag := range tagIDs {
		i, ok := byTag[tag]
		if !ok || staged[i].Status != models.StatusActive {
			return repo.ErrTagNotActive
		}
		staged[i].Status = models.StatusDisabled
	}

	history, err := c.transactions.GetAll()
	if err != nil {
		return err
	}
	history = append(history, t)

	if err := c.store.Save(Document{
		Products:     staged,
		Transactions: history,
		Logs:         c.logs.Tail(),
	}); err != nil {
		return err
	}

	// Durable. Apply to memory; both mutations were validated above.
	if err := c.catalog.MarkSold(tagIDs); err != nil {
		return err
	}
	return c.transactions.Create(t)
}

// SaveState snapshots the current state, used after non-sale mutation batches
// (product creation, import, data reset).
func (c *Committer) SaveState() error {
	products, err := c.catalog.GetAll()
	if err != nil {
		return err
	}
	transactions, err := c.transactions.GetAll()
	if err != nil {
		return err
	}
	return c.store.Save(Document{
		Products:     products,
		Transactions: transactions,
		Logs:         c.logs.Tail(),
	})
}
