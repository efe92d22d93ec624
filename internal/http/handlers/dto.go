package handlers

import "github.com/rogerio-castellano/rfid-pos/internal/models"

type ProductRequest struct {
	TagID    string  `json:"rfidTag"`
	Name     string  `json:"productName"`
	Code     string  `json:"productCode"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

type ProductResponse struct {
	TagID     string  `json:"rfidTag"`
	Name      string  `json:"productName"`
	Code      string  `json:"productCode"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Status    string  `json:"rfidStatus"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type ScanRequest struct {
	TagID  string `json:"rfidTag"`
	Source string `json:"source,omitempty"`
}

// InputRequest carries the raw scan field contents as the operator (or a
// reader wedge) types into it.
type InputRequest struct {
	Value string `json:"value"`
}

type ScanResponse struct {
	Outcome string           `json:"outcome"`
	TagID   string           `json:"rfidTag"`
	Product *ProductResponse `json:"product,omitempty"`
}

type CartResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

type CheckoutRequest struct {
	Customer models.CustomerDetails `json:"customer"`
}

type CheckoutResponse struct {
	Transaction models.Transaction `json:"transaction"`
	Invoice     models.Invoice     `json:"invoice"`
}

type DeviceConnectRequest struct {
	Port string `json:"port"`
	Baud int    `json:"baud,omitempty"`
}

type DeviceStatusResponse struct {
	Connected bool `json:"connected"`
}

type KillPolicyRequest struct {
	KillAfterSale bool   `json:"killAfterSale"`
	KillPassword  string `json:"killPassword,omitempty"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ImportResult struct {
	ImportedProductsCount     int `json:"importedProducts"`
	ImportedTransactionsCount int `json:"importedTransactions"`
}
