package captable

// Store is the persistence boundary: row-level reads and writes keyed by
// company id and record id. Implementations categorize their failures as
// PersistenceError so callers can render specific guidance; errors are
// never retried automatically at this layer.
//
// The Store performs no domain validation. Validation runs in the
// Service before any write; the Store only enforces what its schema can
// (identity, referential integrity).
type Store interface {
	// EnsureCompany creates the registry row for a company if it does
	// not exist yet.
	EnsureCompany(companyID string) error
	// Company returns the registry row, or ErrNotFound.
	Company(companyID string) (Company, error)
	// SetStaticValuation stores the company's last known valuation,
	// used as fallback when the ledger is empty.
	SetStaticValuation(companyID string, v Money) error
	// AddFunding adjusts the company-level total-funding aggregate by
	// delta (negative to subtract).
	AddFunding(companyID string, delta Money) error

	// InsertRecord appends an investment record to the company ledger.
	InsertRecord(companyID string, r InvestmentRecord) error
	// Records returns the company ledger in insertion order.
	Records(companyID string) ([]InvestmentRecord, error)
	// Record returns one record, or ErrNotFound.
	Record(companyID, recordID string) (InvestmentRecord, error)
	// DeleteRecord removes one record, or ErrNotFound.
	DeleteRecord(companyID, recordID string) error

	// ReplaceFounders deletes all founders then inserts the given ones.
	// Founder ids are reassigned: callers must not rely on id stability.
	ReplaceFounders(companyID string, founders []Founder) error
	// Founders returns the company founders in insertion order.
	Founders(companyID string) ([]Founder, error)

	// UpsertShareConfiguration stores the company share structure.
	UpsertShareConfiguration(companyID string, c ShareConfiguration) error
	// ShareConfiguration returns the share structure; the zero value
	// when none was ever configured.
	ShareConfiguration(companyID string) (ShareConfiguration, error)

	// UpsertEsopPool stores the ESOP reserve.
	UpsertEsopPool(companyID string, p EsopPool) error
	// EsopPool returns the reserve; the zero value when none was ever
	// configured.
	EsopPool(companyID string) (EsopPool, error)

	// UpsertRound stores the fundraising round; one per company, last
	// write replaces.
	UpsertRound(companyID string, r FundraisingRound) error
	// Round returns the round and whether one exists.
	Round(companyID string) (FundraisingRound, bool, error)

	Close() error
}
