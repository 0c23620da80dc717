// Package registry provides read access to the canonical customer and
// product reference data, plus persistence of extracted order lines and
// failure diagnostics.
package registry

import (
	"context"
	"strings"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// Customer is one canonical customer record.
type Customer struct {
	ID   int
	Name string
}

// Address is one known delivery address for a customer.
type Address struct {
	Street   string
	PostCode string
	City     string
	Province string
}

// Format renders the address as a single delivery-address string.
func (a Address) Format() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.PostCode, a.City, a.Province} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// OptionQuery identifies an accessory SKU lookup. Size and Type are only
// meaningful for the Premium family.
type OptionQuery struct {
	Family    string
	ColorCode string
	Size      string
	Type      string // "grid" or "cover"
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

// Registry is the canonical reference-data store. Lookup misses return
// zero values with a nil error; errors are reserved for the store itself
// being unreachable.
type Registry interface {
	// Reference data, loaded in full and cached by callers.
	Customers(ctx context.Context) ([]Customer, error)
	Families(ctx context.Context) ([]sku.Family, error)
	Colors(ctx context.Context) ([]sku.Color, error)

	// Point lookups.
	CustomerByEmail(ctx context.Context, address string) (*Customer, error)
	CustomerAddresses(ctx context.Context, customerID int) ([]Address, error)
	OptionSKU(ctx context.Context, q OptionQuery) (string, error)

	// Job output.
	InsertOrderLines(ctx context.Context, jobID string, lines []model.OrderLine) (int64, error)
	SaveFailureContexts(ctx context.Context, jobID string, contexts []model.FailureContext) error

	// Lifecycle.
	Migrate(ctx context.Context) error
	Close() error
}
