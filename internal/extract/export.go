package extract

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/ohmyshower/order-cli/internal/model"
)

// Validate checks one line against the downstream import rules: a SKU of
// the fixed width, a positive quantity, and a recognized valve value.
// Failure stubs carry none of those and always fail validation.
func Validate(line model.OrderLine) error {
	if line.SKU == nil || len(*line.SKU) != model.SKULength {
		return eris.Errorf("export: malformed sku on order %d", line.OrderNo)
	}
	if line.Quantity == nil || *line.Quantity <= 0 {
		return eris.Errorf("export: non-positive quantity on order %d", line.OrderNo)
	}
	if !model.ValidValve(line.Valve) {
		return eris.Errorf("export: invalid valve %q on order %d", line.Valve, line.OrderNo)
	}
	return nil
}

// SplitValid partitions lines into importable and rejected, applying
// Validate per line so one bad line never blocks the rest.
func SplitValid(lines []model.OrderLine) (valid, rejected []model.OrderLine) {
	for _, l := range lines {
		if Validate(l) != nil {
			rejected = append(rejected, l)
			continue
		}
		valid = append(valid, l)
	}
	return valid, rejected
}

// WriteCSV writes lines in the fixed export column order. Nil fields
// render as empty cells.
func WriteCSV(w io.Writer, lines []model.OrderLine) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.ExportColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, l := range lines {
		if err := cw.Write(csvRecord(l)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

func csvRecord(l model.OrderLine) []string {
	return []string{
		strconv.Itoa(l.OrderNo),
		intCell(l.CustomerID),
		strCell(l.CustomerName),
		strCell(l.SKU),
		intCell(l.Quantity),
		strCell(l.ReferenceNo),
		string(l.Valve),
		strCell(l.DeliveryAddress),
		strCell(l.CPSD),
		l.EntryID,
		strCell(l.OptionSKU),
		intCell(l.OptionQty),
		strCell(l.TelephoneNumber),
		strCell(l.ContactName),
	}
}

func strCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
