package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.TagID) == "" {
		errs = append(errs, ProductValidationError{Field: "rfidTag", Description: "RFID tag is required"})
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "productName", Description: "Product name is required"})
	}
	if strings.TrimSpace(p.Code) == "" {
		errs = append(errs, ProductValidationError{Field: "productCode", Description: "Product code is required"})
	}
	if p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "price", Description: "Price cannot be negative"})
	}
	return errs
}
