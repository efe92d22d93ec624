// Package pos is the sale-finalization engine: it resolves raw tag reads into
// cart mutations and turns a cart into an immutable transaction.
package pos

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/rfid-pos/internal/logbook"
	"github.com/rogerio-castellano/rfid-pos/internal/models"
	"github.com/rogerio-castellano/rfid-pos/internal/repo"
)

// ErrEmptyCart is returned by Checkout when there is nothing to sell.
var ErrEmptyCart = errors.New("cart is empty")

// SaleCommitter makes a finalized sale durable: every sold tag transitions to
// disabled and the transaction is recorded, atomically. Its error is the one
// failure that blocks a checkout.
type SaleCommitter interface {
	CommitSale(t models.Transaction, tagIDs []string) error
}

// Killer is what checkout needs from the serial channel.
type Killer interface {
	Connected() bool
	SendKill(tagID, password string) error
}

// Persister snapshots the full state after a non-sale mutation. Nil when a
// database owns durability.
type Persister interface {
	SaveState() error
}

// Settings is the sale policy in force at checkout time.
type Settings struct {
	TaxRate       float64
	KillAfterSale bool
	KillPassword  string
}

// Terminal is the single-writer core of the point of sale. All catalog, cart
// and transaction mutations pass through its mutex; scans from the classifier,
// the serial channel and the API are applied in arrival-completion order.
type Terminal struct {
	mu        sync.Mutex
	catalog   repo.CatalogRepository
	history   repo.TransactionRepository
	cart      *Cart
	committer SaleCommitter
	device    Killer
	logs      *logbook.Book
	persister Persister
	settings  Settings
	logger    *zap.Logger
}

func NewTerminal(catalog repo.CatalogRepository, history repo.TransactionRepository, committer SaleCommitter, device Killer, logs *logbook.Book, settings Settings, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{
		catalog:   catalog,
		history:   history,
		cart:      NewCart(),
		committer: committer,
		device:    device,
		logs:      logs,
		settings:  settings,
		logger:    logger,
	}
}

// SetPersister attaches the snapshot writer invoked after catalog and import
// mutations.
func (t *Terminal) SetPersister(p Persister) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persister = p
}

// Scan resolves one raw tag read against the catalog and the cart. Negative
// outcomes are informational and side-effect free apart from a log entry. The
// error return is for infrastructure failure only, never for lookup misses.
func (t *Terminal) Scan(raw string, src Source) (ScanResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tagID := strings.TrimSpace(raw)
	if tagID == "" {
		return ScanResult{Outcome: ScanNotFound}, nil
	}

	p, err := t.catalog.GetByTag(tagID)
	if errors.Is(err, repo.ErrTagNotFound) {
		t.logs.Addf("RFID not found: %s", tagID)
		return ScanResult{Outcome: ScanNotFound, TagID: tagID}, nil
	}
	if err != nil {
		return ScanResult{}, err
	}

	if !p.Available() {
		t.logs.Addf("Attempted to scan sold product: %s", tagID)
		return ScanResult{Outcome: ScanAlreadySold, TagID: tagID}, nil
	}

	if !t.cart.Add(p) {
		t.logs.Addf("Item already in cart: %s", tagID)
		return ScanResult{Outcome: ScanAlreadyInCart, TagID: tagID}, nil
	}

	t.logs.Addf("Added to cart: %s - %.2f (%s)", p.Name, p.Price, src)
	return ScanResult{Outcome: ScanAdded, TagID: tagID, Product: p}, nil
}

// Checkout finalizes the cart into a Transaction. The committer's durable
// write is the commit point; if it fails, the cart is preserved for retry.
// Kill commands are best-effort and never roll back a committed sale.
func (t *Terminal) Checkout() (models.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cart.Len() == 0 {
		return models.Transaction{}, ErrEmptyCart
	}

	items := t.cart.Items()
	subtotal := round2(t.cart.Total())
	taxAmount := round2(subtotal * t.settings.TaxRate / 100)
	total := round2(subtotal + taxAmount)

	tx := models.Transaction{
		ID:         uuid.New().String(),
		Items:      items,
		Subtotal:   subtotal,
		TaxRate:    t.settings.TaxRate,
		TaxAmount:  taxAmount,
		Total:      total,
		Timestamp:  time.Now().Format(time.RFC3339),
		TagsKilled: t.settings.KillAfterSale,
	}

	if err := t.committer.CommitSale(tx, t.cart.TagIDs()); err != nil {
		t.logger.Error("sale commit failed", zap.String("id", tx.ID), zap.Error(err))
		return models.Transaction{}, err
	}

	t.cart.Clear()
	t.logs.Addf("Transaction completed: %s", tx.ID)
	t.logs.Addf("Amount: %.2f", tx.Total)
	t.logs.Addf("Sold %d products", len(items))

	if t.settings.KillAfterSale {
		t.killTags(tx.TagIDs())
	}
	return tx, nil
}

// killTags issues one kill command per sold tag. With no device connected the
// kill degrades to a simulated-kill log entry.
func (t *Terminal) killTags(tagIDs []string) {
	for _, tag := range tagIDs {
		if t.device == nil || !t.device.Connected() {
			t.logs.Addf("SIMULATED: tag %s would be permanently killed", tag)
			continue
		}
		if err := t.device.SendKill(tag, t.settings.KillPassword); err != nil {
			t.logs.Addf("Kill command failed for tag %s: %v", tag, err)
			continue
		}
		t.logs.Addf("Kill command sent for tag: %s", tag)
	}
}

// CartItems returns the current selection in insertion order.
func (t *Terminal) CartItems() []models.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.Items()
}

// CartTotal returns the sum of captured prices in the cart.
func (t *Terminal) CartTotal() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return round2(t.cart.Total())
}

// ClearCart abandons the current selection.
func (t *Terminal) ClearCart() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cart.Clear()
	t.logs.Add("Cart cleared")
}

// Settings returns the sale policy currently in force.
func (t *Terminal) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// SetKillPolicy toggles kill-after-sale and its tag password.
func (t *Terminal) SetKillPolicy(enabled bool, password string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.settings.KillAfterSale = enabled
	if password != "" {
		t.settings.KillPassword = password
	}
}

// RegisterProduct adds a product to the catalog. It holds the terminal lock so
// a sale commit in flight never stages a half-updated catalog.
func (t *Terminal) RegisterProduct(p models.Product) (models.Product, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	created, err := t.catalog.Create(p)
	if err != nil {
		return models.Product{}, err
	}
	t.logs.Addf("Product added: %s (%s)", created.Name, created.TagID)
	t.persist()
	return created, nil
}

// RemoveProduct deletes a product from the catalog.
func (t *Terminal) RemoveProduct(tagID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.catalog.Delete(tagID); err != nil {
		return err
	}
	t.logs.Addf("Product removed: %s", tagID)
	t.persist()
	return nil
}

// ImportState loads collections from an uploaded backup. A nil slice means the
// document did not carry that collection, and the current one is kept; a
// present collection replaces the stored one wholesale. The in-flight cart is
// discarded either way.
func (t *Terminal) ImportState(products []models.Product, transactions []models.Transaction, logEntries []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if products != nil {
		if err := t.catalog.ReplaceAll(products); err != nil {
			return err
		}
	}
	if transactions != nil {
		if err := t.history.ReplaceAll(transactions); err != nil {
			return err
		}
	}
	if logEntries != nil {
		t.logs.Replace(logEntries)
	}
	t.cart.Clear()
	t.logs.Addf("Data imported: %d products, %d transactions", len(products), len(transactions))
	t.persist()
	return nil
}

// ResetData wipes the catalog, the sales history, the cart and the activity
// log.
func (t *Terminal) ResetData() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.catalog.Clear(); err != nil {
		return err
	}
	if err := t.history.Clear(); err != nil {
		return err
	}
	t.cart.Clear()
	t.logs.Clear()
	t.logs.Add("All data cleared")
	t.persist()
	return nil
}

// ExportState reads catalog and history in one critical section, so a backup
// never mixes pre- and post-sale state.
func (t *Terminal) ExportState() ([]models.Product, []models.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	products, err := t.catalog.GetAll()
	if err != nil {
		return nil, nil, err
	}
	transactions, err := t.history.GetAll()
	if err != nil {
		return nil, nil, err
	}
	return products, transactions, nil
}

// persist is called with the lock held. A failed snapshot is logged, not
// surfaced; memory remains authoritative and the next mutation retries.
func (t *Terminal) persist() {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveState(); err != nil {
		t.logger.Error("state snapshot failed", zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var killPasswordPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)

// ValidKillPassword reports whether p is a well-formed 32-bit hex tag password.
func ValidKillPassword(p string) bool {
	return killPasswordPattern.MatchString(p)
}
