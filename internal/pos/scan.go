package pos

import "github.com/rogerio-castellano/rfid-pos/internal/models"

// ScanOutcome is the closed set of results of dispatching one raw tag read.
type ScanOutcome int

const (
	// ScanAdded means the product was active and is now in the cart.
	ScanAdded ScanOutcome = iota
	// ScanNotFound means no product carries the tag.
	ScanNotFound
	// ScanAlreadySold means the product exists but its tag is disabled.
	ScanAlreadySold
	// ScanAlreadyInCart means the product is active but already selected.
	ScanAlreadyInCart
)

func (o ScanOutcome) String() string {
	switch o {
	case ScanAdded:
		return "added"
	case ScanNotFound:
		return "not_found"
	case ScanAlreadySold:
		return "already_sold"
	case ScanAlreadyInCart:
		return "already_in_cart"
	default:
		return "unknown"
	}
}

// Source identifies the input path a completed scan arrived on. Used for
// logging only; dispatch semantics are identical across sources.
type Source string

const (
	SourceManual Source = "Manual"
	SourceReader Source = "RFID Reader"
	SourceSerial Source = "Serial RFID"
)

// ScanResult is what one dispatch produced. Product is populated only for
// ScanAdded. Every outcome except ScanAdded leaves all state unchanged.
type ScanResult struct {
	Outcome ScanOutcome    `json:"outcome"`
	TagID   string         `json:"rfidTag"`
	Product models.Product `json:"product,omitempty"`
}
