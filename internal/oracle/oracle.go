// Package oracle is the boundary to the generative extraction model. Every
// method sends one prompt over the email text and validates the structured
// response before returning it; callers treat the results as best-effort.
package oracle

import (
	"context"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// CustomerResult is the customer-identification extraction. For a handful
// of hardcoded accounts the model returns the ID directly and fuzzy
// matching is skipped; otherwise Names feeds the matcher.
type CustomerResult struct {
	Names           []string `json:"customer_names"`
	CustomerID      *int     `json:"customer_id"`
	CustomerName    *string  `json:"customer_name"`
	NeedsFuzzyMatch bool     `json:"needs_fuzzy_match"`
}

// AddressResult is the delivery-address extraction. All fields may be nil;
// telephone and contact only accompany an address found in the email text.
type AddressResult struct {
	Address   *string `json:"delivery_address"`
	Telephone *string `json:"telephone_number"`
	Contact   *string `json:"contact_name"`
}

// DatesResult carries promised-ship dates plus the entry identifier the
// model reads off the forwarded thread, when present.
type DatesResult struct {
	Dates   []string `json:"cpsds"`
	EntryID string   `json:"entry_id"`
}

// OptionsResult is the accessory-options extraction (grids and covers).
type OptionsResult struct {
	HasOptions bool   `json:"has_options"`
	Color      string `json:"color"`
	Quantity   int    `json:"quantity"`
	Size       string `json:"size"`
	Type       string `json:"type"`
}

// Oracle defines the extraction operations the pipeline depends on.
type Oracle interface {
	Customer(ctx context.Context, emailText string) (CustomerResult, error)
	OrderLines(ctx context.Context, emailText string, families []sku.Family, colors []sku.Color) ([]sku.RawLine, error)
	References(ctx context.Context, emailText string, customerID int) ([]string, error)
	Valves(ctx context.Context, emailText string, lineCount int) ([]model.Valve, error)
	Address(ctx context.Context, emailText string, customerID *int, customerName *string) (AddressResult, error)
	ShipDates(ctx context.Context, emailText string) (DatesResult, error)
	Options(ctx context.Context, emailText string, colors []sku.Color) (OptionsResult, error)
}
