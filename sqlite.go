package captable

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLStore is the SQLite-backed Store. A single *sql.DB handle is
// injected at construction; there is no package-level state.
type SQLStore struct {
	db *sql.DB
}

var _ Store = (*SQLStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	total_funding TEXT NOT NULL DEFAULT '0',
	static_valuation TEXT NOT NULL DEFAULT '0',
	currency TEXT NOT NULL DEFAULT 'USD'
);

CREATE TABLE IF NOT EXISTS investment_records (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	date TEXT NOT NULL,
	investor_type TEXT NOT NULL,
	round_type TEXT NOT NULL,
	investor_name TEXT NOT NULL,
	investor_code TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL,
	currency TEXT NOT NULL,
	equity_percent REAL NOT NULL,
	post_money TEXT NOT NULL,
	proof_ref TEXT NOT NULL DEFAULT '',
	FOREIGN KEY(company_id) REFERENCES companies(id)
);

CREATE TABLE IF NOT EXISTS founders (
	id TEXT PRIMARY KEY,
	company_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	FOREIGN KEY(company_id) REFERENCES companies(id)
);

CREATE TABLE IF NOT EXISTS share_configs (
	company_id TEXT PRIMARY KEY,
	total_shares INTEGER NOT NULL,
	FOREIGN KEY(company_id) REFERENCES companies(id)
);

CREATE TABLE IF NOT EXISTS esop_pools (
	company_id TEXT PRIMARY KEY,
	reserved_shares INTEGER NOT NULL,
	FOREIGN KEY(company_id) REFERENCES companies(id)
);

CREATE TABLE IF NOT EXISTS fundraising_rounds (
	company_id TEXT PRIMARY KEY,
	active INTEGER NOT NULL,
	type TEXT NOT NULL,
	target_value TEXT NOT NULL,
	currency TEXT NOT NULL,
	target_equity REAL NOT NULL,
	validation_requested INTEGER NOT NULL,
	FOREIGN KEY(company_id) REFERENCES companies(id)
);
`

// OpenSQLStore opens (or creates) the ledger database at path and
// ensures its tables exist.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger database %q: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create ledger tables: %w", categorize(err))
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error { return s.db.Close() }

// EnsureCompany creates the registry row if it does not exist yet.
func (s *SQLStore) EnsureCompany(companyID string) error {
	_, err := s.db.Exec(
		`INSERT INTO companies (id) VALUES (?) ON CONFLICT(id) DO NOTHING`,
		companyID)
	return categorize(err)
}

// Company returns the registry row, or ErrNotFound.
func (s *SQLStore) Company(companyID string) (Company, error) {
	row := s.db.QueryRow(
		`SELECT id, name, total_funding, static_valuation, currency
		 FROM companies WHERE id = ?`, companyID)
	return scanCompany(row)
}

// scanCompany is the single translation point between a companies row
// and the Company entity.
func scanCompany(row *sql.Row) (Company, error) {
	var c Company
	var funding, valuation, currency string
	err := row.Scan(&c.ID, &c.Name, &funding, &valuation, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return Company{}, ErrNotFound
	}
	if err != nil {
		return Company{}, categorize(err)
	}
	c.TotalFunding, err = parseMoney(funding, currency)
	if err != nil {
		return Company{}, err
	}
	c.StaticValuation, err = parseMoney(valuation, currency)
	if err != nil {
		return Company{}, err
	}
	return c, nil
}

// SetStaticValuation stores the fallback valuation.
func (s *SQLStore) SetStaticValuation(companyID string, v Money) error {
	res, err := s.db.Exec(
		`UPDATE companies SET static_valuation = ?, currency = ? WHERE id = ?`,
		v.Decimal().String(), v.Currency(), companyID)
	if err != nil {
		return categorize(err)
	}
	return oneRow(res)
}

// AddFunding adjusts the total-funding aggregate by delta. The
// read-modify-write runs in its own transaction; it is deliberately not
// atomic with any record insert or delete (see Service).
func (s *SQLStore) AddFunding(companyID string, delta Money) error {
	tx, err := s.db.Begin()
	if err != nil {
		return categorize(err)
	}
	defer tx.Rollback()

	var funding, currency string
	err = tx.QueryRow(`SELECT total_funding, currency FROM companies WHERE id = ?`,
		companyID).Scan(&funding, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return categorize(err)
	}
	total, err := parseMoney(funding, currency)
	if err != nil {
		return err
	}
	total = total.Add(delta)
	if _, err := tx.Exec(`UPDATE companies SET total_funding = ? WHERE id = ?`,
		total.Decimal().String(), companyID); err != nil {
		return categorize(err)
	}
	return categorize(tx.Commit())
}

// InsertRecord appends an investment record to the company ledger.
func (s *SQLStore) InsertRecord(companyID string, r InvestmentRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO investment_records
		 (id, company_id, date, investor_type, round_type, investor_name,
		  investor_code, amount, currency, equity_percent, post_money, proof_ref)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, companyID, r.Date.String(), string(r.InvestorType), string(r.RoundType),
		r.InvestorName, r.InvestorCode, r.Amount.Decimal().String(), r.Amount.Currency(),
		float64(r.EquityAllocated), r.PostMoneyValuation.Decimal().String(), r.ProofRef)
	return categorize(err)
}

// Records returns the company ledger in insertion order (rowid order).
func (s *SQLStore) Records(companyID string) ([]InvestmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date, investor_type, round_type, investor_name,
		        investor_code, amount, currency, equity_percent, post_money, proof_ref
		 FROM investment_records WHERE company_id = ? ORDER BY rowid`, companyID)
	if err != nil {
		return nil, categorize(err)
	}
	defer rows.Close()

	var records []InvestmentRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, categorize(rows.Err())
}

// Record returns one record, or ErrNotFound.
func (s *SQLStore) Record(companyID, recordID string) (InvestmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date, investor_type, round_type, investor_name,
		        investor_code, amount, currency, equity_percent, post_money, proof_ref
		 FROM investment_records WHERE company_id = ? AND id = ?`, companyID, recordID)
	if err != nil {
		return InvestmentRecord{}, categorize(err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return InvestmentRecord{}, categorize(err)
		}
		return InvestmentRecord{}, ErrNotFound
	}
	return scanRecord(rows)
}

// scanRecord is the single translation point between an
// investment_records row and the InvestmentRecord entity.
func scanRecord(rows *sql.Rows) (InvestmentRecord, error) {
	var r InvestmentRecord
	var day, investorType, roundType, amount, currency, postMoney string
	var equity float64
	if err := rows.Scan(&r.ID, &day, &investorType, &roundType, &r.InvestorName,
		&r.InvestorCode, &amount, &currency, &equity, &postMoney, &r.ProofRef); err != nil {
		return InvestmentRecord{}, categorize(err)
	}
	var err error
	if r.Date, err = ParseDate(day); err != nil {
		return InvestmentRecord{}, err
	}
	r.InvestorType = InvestorType(investorType)
	r.RoundType = RoundType(roundType)
	r.EquityAllocated = Percent(equity)
	if r.Amount, err = parseMoney(amount, currency); err != nil {
		return InvestmentRecord{}, err
	}
	if r.PostMoneyValuation, err = parseMoney(postMoney, currency); err != nil {
		return InvestmentRecord{}, err
	}
	return r, nil
}

// DeleteRecord removes one record, or ErrNotFound.
func (s *SQLStore) DeleteRecord(companyID, recordID string) error {
	res, err := s.db.Exec(
		`DELETE FROM investment_records WHERE company_id = ? AND id = ?`,
		companyID, recordID)
	if err != nil {
		return categorize(err)
	}
	return oneRow(res)
}

// ReplaceFounders implements full-replace semantics: delete-all then
// insert-all in one transaction. Founder ids are reassigned.
func (s *SQLStore) ReplaceFounders(companyID string, founders []Founder) error {
	tx, err := s.db.Begin()
	if err != nil {
		return categorize(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM founders WHERE company_id = ?`, companyID); err != nil {
		return categorize(err)
	}
	stmt, err := tx.Prepare(`INSERT INTO founders (id, company_id, name, email) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return categorize(err)
	}
	defer stmt.Close()
	for _, f := range founders {
		if _, err := stmt.Exec(uuid.NewString(), companyID, f.Name, f.Email); err != nil {
			return categorize(err)
		}
	}
	return categorize(tx.Commit())
}

// Founders returns the company founders in insertion order.
func (s *SQLStore) Founders(companyID string) ([]Founder, error) {
	rows, err := s.db.Query(
		`SELECT id, name, email FROM founders WHERE company_id = ? ORDER BY rowid`, companyID)
	if err != nil {
		return nil, categorize(err)
	}
	defer rows.Close()

	var founders []Founder
	for rows.Next() {
		var f Founder
		if err := rows.Scan(&f.ID, &f.Name, &f.Email); err != nil {
			return nil, categorize(err)
		}
		founders = append(founders, f)
	}
	return founders, categorize(rows.Err())
}

// UpsertShareConfiguration stores the company share structure.
func (s *SQLStore) UpsertShareConfiguration(companyID string, c ShareConfiguration) error {
	_, err := s.db.Exec(
		`INSERT INTO share_configs (company_id, total_shares) VALUES (?, ?)
		 ON CONFLICT(company_id) DO UPDATE SET total_shares = excluded.total_shares`,
		companyID, c.TotalShares)
	return categorize(err)
}

// ShareConfiguration returns the share structure, the zero value when
// none was ever configured.
func (s *SQLStore) ShareConfiguration(companyID string) (ShareConfiguration, error) {
	var c ShareConfiguration
	err := s.db.QueryRow(
		`SELECT total_shares FROM share_configs WHERE company_id = ?`, companyID).
		Scan(&c.TotalShares)
	if errors.Is(err, sql.ErrNoRows) {
		return ShareConfiguration{}, nil
	}
	return c, categorize(err)
}

// UpsertEsopPool stores the ESOP reserve.
func (s *SQLStore) UpsertEsopPool(companyID string, p EsopPool) error {
	_, err := s.db.Exec(
		`INSERT INTO esop_pools (company_id, reserved_shares) VALUES (?, ?)
		 ON CONFLICT(company_id) DO UPDATE SET reserved_shares = excluded.reserved_shares`,
		companyID, p.ReservedShares)
	return categorize(err)
}

// EsopPool returns the reserve, the zero value when none was ever
// configured.
func (s *SQLStore) EsopPool(companyID string) (EsopPool, error) {
	var p EsopPool
	err := s.db.QueryRow(
		`SELECT reserved_shares FROM esop_pools WHERE company_id = ?`, companyID).
		Scan(&p.ReservedShares)
	if errors.Is(err, sql.ErrNoRows) {
		return EsopPool{}, nil
	}
	return p, categorize(err)
}

// UpsertRound stores the fundraising round; last write replaces.
func (s *SQLStore) UpsertRound(companyID string, r FundraisingRound) error {
	_, err := s.db.Exec(
		`INSERT INTO fundraising_rounds
		 (company_id, active, type, target_value, currency, target_equity, validation_requested)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(company_id) DO UPDATE SET
		   active = excluded.active,
		   type = excluded.type,
		   target_value = excluded.target_value,
		   currency = excluded.currency,
		   target_equity = excluded.target_equity,
		   validation_requested = excluded.validation_requested`,
		companyID, r.Active, string(r.Type), r.TargetValue.Decimal().String(),
		r.TargetValue.Currency(), float64(r.TargetEquity), r.ValidationRequested)
	return categorize(err)
}

// Round returns the fundraising round and whether one exists.
func (s *SQLStore) Round(companyID string) (FundraisingRound, bool, error) {
	var r FundraisingRound
	var roundType, value, currency string
	var equity float64
	err := s.db.QueryRow(
		`SELECT active, type, target_value, currency, target_equity, validation_requested
		 FROM fundraising_rounds WHERE company_id = ?`, companyID).
		Scan(&r.Active, &roundType, &value, &currency, &equity, &r.ValidationRequested)
	if errors.Is(err, sql.ErrNoRows) {
		return FundraisingRound{}, false, nil
	}
	if err != nil {
		return FundraisingRound{}, false, categorize(err)
	}
	r.Type = RoundType(roundType)
	r.TargetEquity = Percent(equity)
	if r.TargetValue, err = parseMoney(value, currency); err != nil {
		return FundraisingRound{}, false, err
	}
	return r, true, nil
}

// parseMoney rebuilds a Money from its stored decimal string and
// currency code.
func parseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("corrupt stored amount %q: %w", amount, err)
	}
	return M(d, currency), nil
}

// oneRow converts a zero-row write into ErrNotFound.
func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return categorize(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
