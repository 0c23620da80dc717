package extract

import (
	"context"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/oracle"
	"github.com/ohmyshower/order-cli/internal/registry"
	"github.com/ohmyshower/order-cli/internal/sku"
)

type fakeOracle struct {
	customer    oracle.CustomerResult
	customerErr error

	lines    []sku.RawLine
	linesErr error

	refs    []string
	refsErr error

	valves     []model.Valve
	valvesErr  error
	valveCount int

	addr    oracle.AddressResult
	addrErr error

	dates    oracle.DatesResult
	datesErr error

	options    oracle.OptionsResult
	optionsErr error
}

func (f *fakeOracle) Customer(ctx context.Context, emailText string) (oracle.CustomerResult, error) {
	return f.customer, f.customerErr
}

func (f *fakeOracle) OrderLines(ctx context.Context, emailText string, families []sku.Family, colors []sku.Color) ([]sku.RawLine, error) {
	return f.lines, f.linesErr
}

func (f *fakeOracle) References(ctx context.Context, emailText string, customerID int) ([]string, error) {
	return f.refs, f.refsErr
}

func (f *fakeOracle) Valves(ctx context.Context, emailText string, lineCount int) ([]model.Valve, error) {
	f.valveCount = lineCount
	return f.valves, f.valvesErr
}

func (f *fakeOracle) Address(ctx context.Context, emailText string, customerID *int, customerName *string) (oracle.AddressResult, error) {
	return f.addr, f.addrErr
}

func (f *fakeOracle) ShipDates(ctx context.Context, emailText string) (oracle.DatesResult, error) {
	return f.dates, f.datesErr
}

func (f *fakeOracle) Options(ctx context.Context, emailText string, colors []sku.Color) (oracle.OptionsResult, error) {
	return f.options, f.optionsErr
}

type fakeRegistry struct {
	customers []registry.Customer
	families  []sku.Family
	colors    []sku.Color
	byEmail   map[string]*registry.Customer
	addresses map[int][]registry.Address
	optionSKU string

	customersCalls int
	optionQueries  []registry.OptionQuery
	insertedJob    string
	inserted       []model.OrderLine
	savedJob       string
	saved          []model.FailureContext
}

func (f *fakeRegistry) Customers(ctx context.Context) ([]registry.Customer, error) {
	f.customersCalls++
	return f.customers, nil
}

func (f *fakeRegistry) Families(ctx context.Context) ([]sku.Family, error) {
	return f.families, nil
}

func (f *fakeRegistry) Colors(ctx context.Context) ([]sku.Color, error) {
	return f.colors, nil
}

func (f *fakeRegistry) CustomerByEmail(ctx context.Context, address string) (*registry.Customer, error) {
	return f.byEmail[address], nil
}

func (f *fakeRegistry) CustomerAddresses(ctx context.Context, customerID int) ([]registry.Address, error) {
	return f.addresses[customerID], nil
}

func (f *fakeRegistry) OptionSKU(ctx context.Context, q registry.OptionQuery) (string, error) {
	f.optionQueries = append(f.optionQueries, q)
	return f.optionSKU, nil
}

func (f *fakeRegistry) InsertOrderLines(ctx context.Context, jobID string, lines []model.OrderLine) (int64, error) {
	f.insertedJob = jobID
	f.inserted = append(f.inserted, lines...)
	return int64(len(lines)), nil
}

func (f *fakeRegistry) SaveFailureContexts(ctx context.Context, jobID string, contexts []model.FailureContext) error {
	f.savedJob = jobID
	f.saved = append(f.saved, contexts...)
	return nil
}

func (f *fakeRegistry) Migrate(ctx context.Context) error { return nil }

func (f *fakeRegistry) Close() error { return nil }

func testRegistry() *fakeRegistry {
	return &fakeRegistry{
		customers: []registry.Customer{
			{ID: 2001, Name: "Materiales de Construccion Soria Gamma SL"},
			{ID: 2002, Name: "Saneamientos Perez SA"},
		},
		families: []sku.Family{
			{Description: "Plato de ducha NATURE", Prefix: "NAT"},
			{Description: "Plato de ducha NEO", Prefix: "NEO"},
		},
		colors: []sku.Color{
			{Description: "Blanco", Code: "BLCO"},
			{Description: "Gris perla", Code: "7035"},
		},
		byEmail:   map[string]*registry.Customer{},
		addresses: map[int][]registry.Address{},
	}
}

func testEmail() model.Email {
	return model.Email{
		MessageID: "MSG-001",
		From:      "pedidos@soriagamma.es",
		To:        "ventas@fabrica.es",
		Subject:   "Pedido platos de ducha",
		Date:      "2025-01-08",
		Body:      "Buenos dias,\n\n2 uds NATURE 140x80 blanco\n1 ud NATURE 120x70 blanco\n\nSaludos",
	}
}
