package models

import "errors"

var (
	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("product not found")
	// ErrIngredientNotFound is returned when an inventory id does not resolve.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrRecipeLineNotFound is returned when no line exists for a product/ingredient pair.
	ErrRecipeLineNotFound = errors.New("recipe line not found")
	// ErrInvalidQuantity is returned for non-positive sale quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPaymentMode is returned for tender types outside Cash/UPI/Card.
	ErrInvalidPaymentMode = errors.New("unsupported payment mode")
	// ErrDuplicateID is returned when inserting an entity whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidCustomer is returned when a customer is added without a name.
	ErrInvalidCustomer = errors.New("customer name is required")
	// ErrUnknownReference is returned when a recipe line points at a missing product or ingredient.
	ErrUnknownReference = errors.New("unknown reference")
)
