package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// SQLiteRegistry implements Registry on a local file, for development runs
// without the production database.
type SQLiteRegistry struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteRegistry, error) {
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "registry: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sdb.Exec(pragma); err != nil {
			sdb.Close()
			return nil, eris.Wrapf(err, "registry: sqlite exec %s", pragma)
		}
	}
	return &SQLiteRegistry{db: sdb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS clients (
	customerid INTEGER PRIMARY KEY,
	customer   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS families (
	family_desc  TEXT PRIMARY KEY,
	sku_prefix   TEXT NOT NULL,
	brochure_sku INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS colorcodes (
	color_description TEXT PRIMARY KEY,
	colorcode         TEXT NOT NULL
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
	color_code   TEXT,
	size         TEXT,
	type         TEXT,
	default_size INTEGER NOT NULL DEFAULT 0,
	sku          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
	orderno          INTEGER NOT NULL,
	job_id           TEXT NOT NULL,
	customerid       INTEGER,
	customer_name    TEXT,
	sku              TEXT,
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
	created_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS job_failures (
	job_id     TEXT PRIMARY KEY,
	contexts   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_client_addresses_customerid ON client_addresses(customerid);
CREATE INDEX IF NOT EXISTS idx_options_family ON options(family);
CREATE INDEX IF NOT EXISTS idx_order_lines_job_id ON order_lines(job_id);
`

func (r *SQLiteRegistry) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "registry: sqlite migrate")
}

func (r *SQLiteRegistry) Close() error {
	return r.db.Close()
}

func (r *SQLiteRegistry) Customers(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT customerid, customer FROM clients ORDER BY customer`)
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

func (r *SQLiteRegistry) Families(ctx context.Context) ([]sku.Family, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT family_desc, sku_prefix FROM families WHERE brochure_sku = 1 ORDER BY family_desc`)
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

func (r *SQLiteRegistry) Colors(ctx context.Context) ([]sku.Color, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT color_description, colorcode FROM colorcodes ORDER BY color_description`)
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

func (r *SQLiteRegistry) CustomerByEmail(ctx context.Context, address string) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT customerid, customername FROM email_lookup WHERE LOWER(emailaddress) = LOWER(?) LIMIT 1`,
		address).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "registry: lookup customer by email %s", address)
	}
	return &c, nil
}

func (r *SQLiteRegistry) CustomerAddresses(ctx context.Context, customerID int) ([]Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT street_address, post_code, city, province FROM client_addresses WHERE customerid = ? ORDER BY street_address`,
		customerID)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: addresses for customer %d", customerID)
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		var postCode, city, province sql.NullString
		if err := rows.Scan(&a.Street, &postCode, &city, &province); err != nil {
			return nil, eris.Wrap(err, "registry: scan address")
		}
		a.PostCode = postCode.String
		a.City = city.String
		a.Province = province.String
		out = append(out, a)
	}
	return out, eris.Wrapf(rows.Err(), "registry: addresses for customer %d", customerID)
}

func (r *SQLiteRegistry) OptionSKU(ctx context.Context, q OptionQuery) (string, error) {
	switch normalizeFamily(q.Family) {
	case "premium":
		if q.Size == "" || q.Type == "" {
			return "", nil
		}
		if q.ColorCode != "" {
			s, err := r.optionQuery(ctx,
				`SELECT sku FROM options WHERE LOWER(family) = LOWER(?) AND color_code = ? AND size = ? AND type = ? LIMIT 1`,
				q.Family, q.ColorCode, q.Size, q.Type)
			if err != nil || s != "" {
				return s, err
			}
		}
		return r.optionQuery(ctx,
			`SELECT sku FROM options WHERE LOWER(family) = LOWER(?) AND size = ? AND type = ? AND default_size = 1 LIMIT 1`,
			q.Family, q.Size, q.Type)

	case "neo":
		if q.ColorCode == "" {
			return "", nil
		}
		return r.optionQuery(ctx,
			`SELECT sku FROM options WHERE LOWER(family) = LOWER(?) AND color_code = ? LIMIT 1`,
			q.Family, q.ColorCode)

	default:
		if q.ColorCode != "" {
			s, err := r.optionQuery(ctx,
				`SELECT sku FROM options WHERE LOWER(family) = LOWER(?) AND color_code = ? LIMIT 1`,
				q.Family, q.ColorCode)
			if err != nil || s != "" {
				return s, err
			}
		}
		return r.optionQuery(ctx,
			`SELECT sku FROM options WHERE LOWER(family) = LOWER(?) AND default_size = 1 LIMIT 1`,
			q.Family)
	}
}

func (r *SQLiteRegistry) optionQuery(ctx context.Context, query string, args ...any) (string, error) {
	var s string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "registry: option lookup")
	}
	return s, nil
}

func (r *SQLiteRegistry) InsertOrderLines(ctx context.Context, jobID string, lines []model.OrderLine) (int64, error) {
	if len(lines) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "registry: begin insert")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_lines (
			orderno, job_id, customerid, customer_name, sku, quantity,
			reference_no, valve, delivery_address, cpsd, entry_id,
			option_sku, option_qty, telephone_number, contact_name, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "registry: prepare insert")
	}
	defer stmt.Close()

	var n int64
	for _, l := range lines {
		if _, err := stmt.ExecContext(ctx,
			l.OrderNo, jobID, l.CustomerID, l.CustomerName, l.SKU, l.Quantity,
			l.ReferenceNo, string(l.Valve), l.DeliveryAddress, l.CPSD, l.EntryID,
			l.OptionSKU, l.OptionQty, l.TelephoneNumber, l.ContactName, l.Error,
		); err != nil {
			return 0, eris.Wrapf(err, "registry: insert order line %d", l.OrderNo)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "registry: commit insert")
	}
	return n, nil
}

func (r *SQLiteRegistry) SaveFailureContexts(ctx context.Context, jobID string, contexts []model.FailureContext) error {
	if len(contexts) == 0 {
		return nil
	}
	payload, err := json.Marshal(contexts)
	if err != nil {
		return eris.Wrap(err, "registry: marshal failure contexts")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO job_failures (job_id, contexts) VALUES (?, ?)
		ON CONFLICT (job_id) DO UPDATE SET contexts = excluded.contexts`,
		jobID, string(payload))
	return eris.Wrap(err, "registry: save failure contexts")
}
