package registry

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmyshower/order-cli/internal/model"
)

// newMockRegistry creates a PostgresRegistry backed by pgxmock.
func newMockRegistry(t *testing.T) (*PostgresRegistry, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresRegistry_Customers(t *testing.T) {
	r, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT customerid, customer FROM clients`).
		WillReturnRows(pgxmock.NewRows([]string{"customerid", "customer"}).
			AddRow(101, "MATERIALES DE CONSTRUCCION SORIA S.L.").
			AddRow(102, "ALMACENES DE CONSTRUCCION LITO, S.L."))

	customers, err := r.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, Customer{ID: 101, Name: "MATERIALES DE CONSTRUCCION SORIA S.L."}, customers[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_Families(t *testing.T) {
	r, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT family_desc, sku_prefix FROM families`).
		WillReturnRows(pgxmock.NewRows([]string{"family_desc", "sku_prefix"}).
			AddRow("Plato de ducha Nature", "NAT"))

	families, err := r.Families(context.Background())
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "NAT", families[0].Prefix)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_CustomerByEmail_NotFound(t *testing.T) {
	r, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT customerid, customername FROM email_lookup`).
		WithArgs("unknown@example.es").
		WillReturnError(pgx.ErrNoRows)

	c, err := r.CustomerByEmail(context.Background(), "unknown@example.es")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_CustomerByEmail_Found(t *testing.T) {
	r, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT customerid, customername FROM email_lookup`).
		WithArgs("dist.generalife@gmail.com").
		WillReturnRows(pgxmock.NewRows([]string{"customerid", "customername"}).
			AddRow(104, "DISTRIBUCIONES GENERALIFE MARACENA, S.L."))

	c, err := r.CustomerByEmail(context.Background(), "dist.generalife@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 104, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_OptionSKU_ColorThenDefault(t *testing.T) {
	r, mock := newMockRegistry(t)

	// Color match misses, default-size row is the fallback.
	mock.ExpectQuery(`SELECT sku FROM options WHERE LOWER\(family\) = LOWER\(\$1\) AND color_code = \$2`).
		WithArgs("Nature", "BLCO").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT sku FROM options WHERE LOWER\(family\) = LOWER\(\$1\) AND default_size = TRUE`).
		WithArgs("Nature").
		WillReturnRows(pgxmock.NewRows([]string{"sku"}).AddRow("OPTNATDEF"))

	s, err := r.OptionSKU(context.Background(), OptionQuery{Family: "Nature", ColorCode: "BLCO"})
	require.NoError(t, err)
	assert.Equal(t, "OPTNATDEF", s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_OptionSKU_NeoNoFallback(t *testing.T) {
	r, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT sku FROM options WHERE LOWER\(family\) = LOWER\(\$1\) AND color_code = \$2`).
		WithArgs("Neo", "NEGR").
		WillReturnError(pgx.ErrNoRows)

	s, err := r.OptionSKU(context.Background(), OptionQuery{Family: "Neo", ColorCode: "NEGR"})
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_OptionSKU_PremiumRequiresSizeAndType(t *testing.T) {
	r, _ := newMockRegistry(t)

	s, err := r.OptionSKU(context.Background(), OptionQuery{Family: "Premium", ColorCode: "BLCO"})
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestPostgresRegistry_InsertOrderLines(t *testing.T) {
	r, mock := newMockRegistry(t)

	mock.ExpectCopyFrom(pgx.Identifier{"order_lines"}, orderLineColumns).WillReturnResult(2)

	lines := []model.OrderLine{
		{OrderNo: 1, SKU: model.Ptr("NAT140080BLCO"), Quantity: model.Ptr(2), Valve: model.ValveNone, EntryID: "e1"},
		{OrderNo: 1, SKU: model.Ptr("NAT150080BLCO"), Quantity: model.Ptr(1), Valve: model.ValveNone, EntryID: "e1"},
	}
	n, err := r.InsertOrderLines(context.Background(), "job-1", lines)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRegistry_SaveFailureContexts_EmptyIsNoop(t *testing.T) {
	r, mock := newMockRegistry(t)

	err := r.SaveFailureContexts(context.Background(), "job-1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
