package model

// Valve describes the valve request attached to an order line. The default
// horizontal valve shipped with every tray is "no"; anything else is an
// explicit alternative-valve request.
type Valve string

const (
	ValveNone        Valve = "no"
	ValveYes         Valve = "Yes"
	ValveHorizontal  Valve = "Horizontal valve"
	ValveVertical    Valve = "Vertical valve"
	ValveRectangular Valve = "Rectangular valve"
)

// ValidValve reports whether v is one of the allowed valve values.
func ValidValve(v Valve) bool {
	switch v {
	case ValveNone, ValveYes, ValveHorizontal, ValveVertical, ValveRectangular:
		return true
	}
	return false
}

// SKULength is the fixed width of a composed product code:
// family(3) + longer dimension(3) + shorter dimension(3) + color(4).
const SKULength = 13

// OrderLine is one product-quantity record extracted from an email, destined
// for one database row. Lines are assembled once during the phase-4 merge and
// never mutated afterwards.
type OrderLine struct {
	OrderNo         int     `json:"orderno" csv:"orderno"`
	CustomerID      *int    `json:"customerid" csv:"customerid"`
	CustomerName    *string `json:"customer_name" csv:"customer_name"`
	SKU             *string `json:"sku" csv:"sku"`
	Quantity        *int    `json:"quantity" csv:"quantity"`
	ReferenceNo     *string `json:"reference_no" csv:"reference_no"`
	Valve           Valve   `json:"valve" csv:"valve"`
	DeliveryAddress *string `json:"delivery_address" csv:"delivery_address"`
	CPSD            *string `json:"cpsd" csv:"cpsd"` // YYYY-MM-DD or nil
	EntryID         string  `json:"entry_id" csv:"entry_id"`
	OptionSKU       *string `json:"option_sku" csv:"option_sku"`
	OptionQty       *int    `json:"option_qty" csv:"option_qty"`
	TelephoneNumber *string `json:"telephone_number" csv:"telephone_number"`
	ContactName     *string `json:"contact_name" csv:"contact_name"`

	// Error is set only on failure stubs and excluded from the export columns.
	Error string `json:"error,omitempty" csv:"-"`
}

// FailureStub returns the single degraded line emitted when phase 1 or 2
// fails for an email. Customer identity is attached when phase 1 succeeded.
func FailureStub(orderNo int, entryID string, customerID *int, customerName *string, reason string) OrderLine {
	return OrderLine{
		OrderNo:      orderNo,
		CustomerID:   customerID,
		CustomerName: customerName,
		Valve:        ValveNone,
		EntryID:      entryID,
		Error:        reason,
	}
}

// ProductLine is a resolved SKU+quantity pair from phase 2, before the
// phase-4 merge attaches the parallel-extraction fields.
type ProductLine struct {
	SKU        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	FamilyDesc string `json:"family_desc"`
}

// EmailResult is the outcome of processing one email: either real order
// lines or a single failure stub, plus any failure diagnostics collected
// along the way.
type EmailResult struct {
	Lines    []OrderLine
	Failures []FailureContext
}

// ExportColumns is the fixed column order of the order_details export.
var ExportColumns = []string{
	"orderno", "customerid", "customer_name", "sku", "quantity",
	"reference_no", "valve", "delivery_address", "cpsd", "entry_id",
	"option_sku", "option_qty", "telephone_number", "contact_name",
}

// Ptr returns a pointer to v. Convenience for building optional fields.
func Ptr[T any](v T) *T { return &v }
