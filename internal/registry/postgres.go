package registry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/ohmyshower/order-cli/internal/db"
	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// PostgresRegistry implements Registry against the production database.
type PostgresRegistry struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hot lookup paths.
var preparedStatements = map[string]string{
	"list_customers":     `SELECT customerid, customer FROM clients ORDER BY customer`,
	"list_families":      `SELECT family_desc, sku_prefix FROM families WHERE brochure_sku = TRUE ORDER BY family_desc`,
	"list_colors":        `SELECT color_description, colorcode FROM colorcodes ORDER BY color_description`,
	"customer_by_email":  `SELECT customerid, customername FROM email_lookup WHERE LOWER(emailaddress) = LOWER($1) LIMIT 1`,
	"customer_addresses": `SELECT street_address, post_code, city, province FROM client_addresses WHERE customerid = $1 ORDER BY street_address`,
}

// NewPostgres creates a PostgresRegistry with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresRegistry, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "registry: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "registry: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "registry: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "registry: ping")
	}
	return &PostgresRegistry{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool, for tests.
func NewPostgresWithPool(pool db.Pool) *PostgresRegistry {
	return &PostgresRegistry{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS clients (
	customerid INTEGER PRIMARY KEY,
	customer   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS families (
	family_desc  TEXT PRIMARY KEY,
	sku_prefix   CHAR(3) NOT NULL,
	brochure_sku BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS colorcodes (
	color_description TEXT PRIMARY KEY,
	colorcode         CHAR(4) NOT NULL
);

CREATE TABLE IF NOT EXISTS email_lookup (
	emailaddress TEXT PRIMARY KEY,
	customerid   INTEGER NOT NULL,
	customername TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS client_addresses (
	customerid     INTEGER NOT NULL,
	street_address TEXT NOT NULL,
	post_code      TEXT,
	city           TEXT,
	province       TEXT
);

CREATE TABLE IF NOT EXISTS options (
	family       TEXT NOT NULL,
	color_code   CHAR(4),
	size         TEXT,
	type         TEXT,
	default_size BOOLEAN NOT NULL DEFAULT FALSE,
	sku          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
	orderno          INTEGER NOT NULL,
	job_id           TEXT NOT NULL,
	customerid       INTEGER,
	customer_name    TEXT,
	sku              CHAR(13),
	quantity         INTEGER,
	reference_no     TEXT,
	valve            TEXT,
	delivery_address TEXT,
	cpsd             TEXT,
	entry_id         TEXT,
	option_sku       TEXT,
	option_qty       INTEGER,
	telephone_number TEXT,
	contact_name     TEXT,
	error            TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS job_failures (
	job_id     TEXT PRIMARY KEY,
	contexts   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_client_addresses_customerid ON client_addresses(customerid);
CREATE INDEX IF NOT EXISTS idx_options_family ON options(family);
CREATE INDEX IF NOT EXISTS idx_order_lines_job_id ON order_lines(job_id);
`

func (r *PostgresRegistry) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "registry: migrate")
}

func (r *PostgresRegistry) Close() error {
	if r.closeFn != nil {
		r.closeFn()
	}
	return nil
}

func (r *PostgresRegistry) Customers(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, preparedStatements["list_customers"])
	if err != nil {
		return nil, eris.Wrap(err, "registry: list customers")
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, eris.Wrap(err, "registry: scan customer")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "registry: list customers")
}

func (r *PostgresRegistry) Families(ctx context.Context) ([]sku.Family, error) {
	rows, err := r.pool.Query(ctx, preparedStatements["list_families"])
	if err != nil {
		return nil, eris.Wrap(err, "registry: list families")
	}
	defer rows.Close()

	var out []sku.Family
	for rows.Next() {
		var f sku.Family
		if err := rows.Scan(&f.Description, &f.Prefix); err != nil {
			return nil, eris.Wrap(err, "registry: scan family")
		}
		out = append(out, f)
	}
	return out, eris.Wrap(rows.Err(), "registry: list families")
}

func (r *PostgresRegistry) Colors(ctx context.Context) ([]sku.Color, error) {
	rows, err := r.pool.Query(ctx, preparedStatements["list_colors"])
	if err != nil {
		return nil, eris.Wrap(err, "registry: list colors")
	}
	defer rows.Close()

	var out []sku.Color
	for rows.Next() {
		var c sku.Color
		if err := rows.Scan(&c.Description, &c.Code); err != nil {
			return nil, eris.Wrap(err, "registry: scan color")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "registry: list colors")
}

func (r *PostgresRegistry) CustomerByEmail(ctx context.Context, address string) (*Customer, error) {
	var c Customer
	err := r.pool.QueryRow(ctx, preparedStatements["customer_by_email"], address).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "registry: lookup customer by email %s", address)
	}
	return &c, nil
}

func (r *PostgresRegistry) CustomerAddresses(ctx context.Context, customerID int) ([]Address, error) {
	rows, err := r.pool.Query(ctx, preparedStatements["customer_addresses"], customerID)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: addresses for customer %d", customerID)
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		var postCode, city, province *string
		if err := rows.Scan(&a.Street, &postCode, &city, &province); err != nil {
			return nil, eris.Wrap(err, "registry: scan address")
		}
		if postCode != nil {
			a.PostCode = *postCode
		}
		if city != nil {
			a.City = *city
		}
		if province != nil {
			a.Province = *province
		}
		out = append(out, a)
	}
	return out, eris.Wrapf(rows.Err(), "registry: addresses for customer %d", customerID)
}

// OptionSKU resolves an accessory SKU with family-specific rules: Premium
// needs size and type and may fall back to the default size; Neo matches on
// color only with no fallback; every other family tries color first and
// then the default-size row.
func (r *PostgresRegistry) OptionSKU(ctx context.Context, q OptionQuery) (string, error) {
	switch normalizeFamily(q.Family) {
	case "premium":
		if q.Size == "" || q.Type == "" {
			return "", nil
		}
		if q.ColorCode != "" {
			s, err := r.optionQuery(ctx,
				`SELECT sku FROM options WHERE LOWER(family) = LOWER($1) AND color_code = $2 AND size = $3 AND type = $4 LIMIT 1`,
				q.Family, q.ColorCode, q.Size, q.Type)
			if err != nil || s != "" {
				return s, err
			}
		}
		return r.optionQuery(ctx,
			`SELECT sku FROM options WHERE LOWER(family) = LOWER($1) AND size = $2 AND type = $3 AND default_size = TRUE LIMIT 1`,
			q.Family, q.Size, q.Type)

	case "neo":
		if q.ColorCode == "" {
			return "", nil
		}
		return r.optionQuery(ctx,
			`SELECT sku FROM options WHERE LOWER(family) = LOWER($1) AND color_code = $2 LIMIT 1`,
			q.Family, q.ColorCode)

	default:
		if q.ColorCode != "" {
			s, err := r.optionQuery(ctx,
				`SELECT sku FROM options WHERE LOWER(family) = LOWER($1) AND color_code = $2 LIMIT 1`,
				q.Family, q.ColorCode)
			if err != nil || s != "" {
				return s, err
			}
		}
		return r.optionQuery(ctx,
			`SELECT sku FROM options WHERE LOWER(family) = LOWER($1) AND default_size = TRUE LIMIT 1`,
			q.Family)
	}
}

func (r *PostgresRegistry) optionQuery(ctx context.Context, query string, args ...any) (string, error) {
	var s string
	err := r.pool.QueryRow(ctx, query, args...).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "registry: option lookup")
	}
	return s, nil
}

// orderLineColumns is the COPY column order for InsertOrderLines.
var orderLineColumns = []string{
	"orderno", "job_id", "customerid", "customer_name", "sku", "quantity",
	"reference_no", "valve", "delivery_address", "cpsd", "entry_id",
	"option_sku", "option_qty", "telephone_number", "contact_name", "error",
}

func (r *PostgresRegistry) InsertOrderLines(ctx context.Context, jobID string, lines []model.OrderLine) (int64, error) {
	rows := make([][]any, len(lines))
	for i, l := range lines {
		rows[i] = []any{
			l.OrderNo, jobID, l.CustomerID, l.CustomerName, l.SKU, l.Quantity,
			l.ReferenceNo, string(l.Valve), l.DeliveryAddress, l.CPSD, l.EntryID,
			l.OptionSKU, l.OptionQty, l.TelephoneNumber, l.ContactName, l.Error,
		}
	}
	n, err := db.CopyFrom(ctx, r.pool, "order_lines", orderLineColumns, rows)
	return n, eris.Wrap(err, "registry: insert order lines")
}

func (r *PostgresRegistry) SaveFailureContexts(ctx context.Context, jobID string, contexts []model.FailureContext) error {
	if len(contexts) == 0 {
		return nil
	}
	payload, err := json.Marshal(contexts)
	if err != nil {
		return eris.Wrap(err, "registry: marshal failure contexts")
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO job_failures (job_id, contexts) VALUES ($1, $2)
		 ON CONFLICT (job_id) DO UPDATE SET contexts = EXCLUDED.contexts`,
		jobID, payload)
	return eris.Wrap(err, "registry: save failure contexts")
}
