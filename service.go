package captable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ValidationRequester is the external validation workflow: saving a
// fundraising round with the validation flag set asks it to create or
// update a request, clearing the flag asks it to remove one. The ledger
// only produces these side effects, it never consumes them back.
type ValidationRequester interface {
	Request(ctx context.Context, companyID string, round FundraisingRound) error
	Withdraw(ctx context.Context, companyID string) error
}

// ProofDocument is an optional attachment uploaded before a record is
// inserted. If the upload fails, the insert is never attempted.
type ProofDocument struct {
	Name    string
	Content io.Reader
}

// ServiceConfig wires the Service's collaborators. Store is required;
// the others are optional and their absence disables the matching
// feature (no proof uploads, zero allocated ESOP value, no validation
// requests, no change tokens).
type ServiceConfig struct {
	Store       Store
	Storage     Storage
	Employees   EmployeeDirectory
	Validations ValidationRequester
	Feed        *Feed
	Logger      *slog.Logger
	// Today overrides the clock, for tests.
	Today func() Date
}

// Service is the equity-ledger core. It is stateless: all state lives
// behind the injected Store, and every mutation executes to completion
// before the caller proceeds. Cross-session concurrency is
// last-write-wins; sessions learn about external writes through the
// change feed and re-fetch.
type Service struct {
	store       Store
	storage     Storage
	employees   EmployeeDirectory
	validations ValidationRequester
	feed        *Feed
	comp        *Compensator
	log         *slog.Logger
	today       func() Date
}

// NewService builds a Service from its configuration.
func NewService(cfg ServiceConfig) *Service {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	today := cfg.Today
	if today == nil {
		today = Today
	}
	return &Service{
		store:       cfg.Store,
		storage:     cfg.Storage,
		employees:   cfg.Employees,
		validations: cfg.Validations,
		feed:        cfg.Feed,
		comp:        NewCompensator(log),
		log:         log,
		today:       today,
	}
}

func (s *Service) publish(companyID string, entity Entity) {
	if s.feed != nil {
		s.feed.Publish(Change{CompanyID: companyID, Entity: entity})
	}
}

// AddInvestmentRecord validates the draft, uploads the proof document if
// any, then appends the record and adds its amount to the company's
// total-funding aggregate. No partial write happens on a validation or
// upload failure.
//
// The returned record carries its assigned identity and the stored
// post-money valuation (derived at insert time when the draft had none,
// and never re-derived afterwards). A returned DependentWarning means
// the record itself was committed and only the funding aggregate lags.
func (s *Service) AddInvestmentRecord(ctx context.Context, companyID string, draft InvestmentRecord, proof *ProofDocument) (InvestmentRecord, error) {
	if err := draft.Validate(s.today()); err != nil {
		return InvestmentRecord{}, err
	}
	if draft.PostMoneyValuation.IsZero() {
		draft.PostMoneyValuation = DerivePostMoney(draft.Amount, draft.EquityAllocated)
	}

	// The upload is a synchronous prerequisite: a failed upload blocks
	// the insert, an uploaded-but-unused file may remain in storage.
	if proof != nil {
		if s.storage == nil {
			return InvestmentRecord{}, &UploadError{Name: proof.Name, Err: errors.New("no storage configured")}
		}
		ref, err := s.storage.Upload(proof.Name, proof.Content)
		if err != nil {
			return InvestmentRecord{}, err
		}
		draft.ProofRef = ref
	}

	if err := s.store.EnsureCompany(companyID); err != nil {
		return InvestmentRecord{}, err
	}
	draft.ID = newRecordID()
	if err := s.store.InsertRecord(companyID, draft); err != nil {
		return InvestmentRecord{}, err
	}
	s.log.Info("investment record added",
		"company", companyID, "record", draft.ID, "amount", draft.Amount.String())
	s.publish(companyID, EntityRecords)

	warn := s.comp.Apply(CompensatingAction{
		Key: "funding-apply/" + companyID + "/" + draft.ID,
		Op:  "funding increment",
		Run: func() error { return s.store.AddFunding(companyID, draft.Amount) },
	})
	return draft, warn
}

// DeleteInvestmentRecord removes the record, then issues a compensating
// update subtracting its amount from the total-funding aggregate. The
// two writes are deliberately independent: if the compensating step
// fails the deletion stands, a DependentWarning is returned and the
// action stays queued under an idempotency key so RetryCompensations can
// replay it without double-subtracting.
func (s *Service) DeleteInvestmentRecord(ctx context.Context, companyID, recordID string) error {
	rec, err := s.store.Record(companyID, recordID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRecord(companyID, recordID); err != nil {
		return err
	}
	s.log.Info("investment record deleted", "company", companyID, "record", recordID)
	s.publish(companyID, EntityRecords)

	return s.comp.Apply(CompensatingAction{
		Key: compensationKey(companyID, recordID),
		Op:  "funding rollback",
		Run: func() error { return s.store.AddFunding(companyID, rec.Amount.Neg()) },
	})
}

// ReplaceFounders replaces the founder list wholesale: delete-all then
// insert-all, no incremental diff. Founder ids are not stable across
// calls.
func (s *Service) ReplaceFounders(ctx context.Context, companyID string, founders []Founder) error {
	for _, f := range founders {
		if f.Name == "" {
			return invalidf("name", "founder name is required")
		}
	}
	if err := s.store.EnsureCompany(companyID); err != nil {
		return err
	}
	if err := s.store.ReplaceFounders(companyID, founders); err != nil {
		return err
	}
	s.publish(companyID, EntityFounders)
	return nil
}

// UpsertShareConfiguration stores the company's total share count. It
// succeeds even when totalShares shrinks below the reserved ESOP shares:
// the cross-entity guard lives on the reserved-shares edit, not here.
// This asymmetry is deliberate.
func (s *Service) UpsertShareConfiguration(ctx context.Context, companyID string, c ShareConfiguration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.store.EnsureCompany(companyID); err != nil {
		return err
	}
	if err := s.store.UpsertShareConfiguration(companyID, c); err != nil {
		return err
	}
	s.publish(companyID, EntityShares)
	return nil
}

// UpsertEsopReservedShares stores the ESOP reserve after validating it
// against the current total share count: a reserve above totalShares is
// rejected, equal to totalShares succeeds.
func (s *Service) UpsertEsopReservedShares(ctx context.Context, companyID string, p EsopPool) error {
	shares, err := s.store.ShareConfiguration(companyID)
	if err != nil {
		return err
	}
	if err := p.Validate(shares.TotalShares); err != nil {
		return err
	}
	if err := s.store.EnsureCompany(companyID); err != nil {
		return err
	}
	if err := s.store.UpsertEsopPool(companyID, p); err != nil {
		return err
	}
	s.publish(companyID, EntityEsop)
	return nil
}

// SetFundraisingRound validates and upserts the company's round (one per
// company, last write replaces), then asks the validation workflow to
// create or remove a request according to the ValidationRequested flag.
// A failure of that side effect never rolls back the round save: it is
// returned as a DependentWarning.
func (s *Service) SetFundraisingRound(ctx context.Context, companyID string, round FundraisingRound) error {
	if err := round.Validate(); err != nil {
		return err
	}
	if err := s.store.EnsureCompany(companyID); err != nil {
		return err
	}
	if err := s.store.UpsertRound(companyID, round); err != nil {
		return err
	}
	s.publish(companyID, EntityRound)

	if s.validations == nil {
		return nil
	}
	var err error
	if round.ValidationRequested {
		err = s.validations.Request(ctx, companyID, round)
	} else {
		err = s.validations.Withdraw(ctx, companyID)
	}
	if err != nil {
		s.log.Warn("validation request update failed", "company", companyID, "error", err)
		return &DependentWarning{Op: "validation request", Err: err}
	}
	return nil
}

// SetStaticValuation records the company's last known valuation, the
// fallback used when the ledger holds no records.
func (s *Service) SetStaticValuation(ctx context.Context, companyID string, v Money) error {
	if v.IsNegative() {
		return invalidf("valuation", "valuation must not be negative, got %s", v)
	}
	if err := s.store.EnsureCompany(companyID); err != nil {
		return err
	}
	return s.store.SetStaticValuation(companyID, v)
}

// Records returns the company ledger in insertion order.
func (s *Service) Records(ctx context.Context, companyID string) ([]InvestmentRecord, error) {
	return s.store.Records(companyID)
}

// Founders returns the company founders.
func (s *Service) Founders(ctx context.Context, companyID string) ([]Founder, error) {
	return s.store.Founders(companyID)
}

// Round returns the fundraising round and whether one exists.
func (s *Service) Round(ctx context.Context, companyID string) (FundraisingRound, bool, error) {
	return s.store.Round(companyID)
}

// ProofURL resolves a record's proof document to a download URL.
func (s *Service) ProofURL(ctx context.Context, companyID, recordID string) (string, error) {
	rec, err := s.store.Record(companyID, recordID)
	if err != nil {
		return "", err
	}
	if rec.ProofRef == "" {
		return "", fmt.Errorf("record %s has no proof document: %w", recordID, ErrNotFound)
	}
	if s.storage == nil {
		return "", errors.New("no storage configured")
	}
	return s.storage.DownloadURL(rec.ProofRef)
}

// CapTable is the derived ownership picture of a company at read time.
type CapTable struct {
	Valuation     Money   `json:"valuation"`
	PricePerShare Money   `json:"pricePerShare"`
	TotalFunding  Money   `json:"totalFunding"`
	Distribution  []Slice `json:"distribution"`
}

// CapTable assembles the current valuation, price per share and equity
// distribution from a fresh read of the ledger. Nothing is cached.
func (s *Service) CapTable(ctx context.Context, companyID string) (CapTable, error) {
	company, err := s.company(companyID)
	if err != nil {
		return CapTable{}, err
	}
	records, err := s.store.Records(companyID)
	if err != nil {
		return CapTable{}, err
	}
	founders, err := s.store.Founders(companyID)
	if err != nil {
		return CapTable{}, err
	}
	shares, err := s.store.ShareConfiguration(companyID)
	if err != nil {
		return CapTable{}, err
	}

	valuation := CurrentValuation(records, company.StaticValuation)
	return CapTable{
		Valuation:     valuation,
		PricePerShare: PricePerShare(shares.TotalShares, valuation),
		TotalFunding:  company.TotalFunding,
		Distribution:  EquityDistribution(records, founders),
	}, nil
}

// EsopStatus derives the pool status from the current ledger state and
// the employee subsystem's allocations.
func (s *Service) EsopStatus(ctx context.Context, companyID string) (EsopStatus, error) {
	company, err := s.company(companyID)
	if err != nil {
		return EsopStatus{}, err
	}
	records, err := s.store.Records(companyID)
	if err != nil {
		return EsopStatus{}, err
	}
	shares, err := s.store.ShareConfiguration(companyID)
	if err != nil {
		return EsopStatus{}, err
	}
	pool, err := s.store.EsopPool(companyID)
	if err != nil {
		return EsopStatus{}, err
	}

	currency := company.TotalFunding.Currency()
	allocated := M(0, currency)
	if s.employees != nil {
		employees, err := s.employees.ListEmployees(ctx, companyID)
		if err != nil {
			return EsopStatus{}, fmt.Errorf("could not read employee allocations: %w", err)
		}
		allocated = SumAllocations(employees, currency)
	}

	valuation := CurrentValuation(records, company.StaticValuation)
	return NewEsopStatus(shares, pool, valuation, allocated), nil
}

// Summary rolls up the ledger by round type, recomputed from the full
// record set on every call.
func (s *Service) Summary(ctx context.Context, companyID string) (Summary, error) {
	records, err := s.store.Records(companyID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}

// History returns the time-ordered valuation history.
func (s *Service) History(ctx context.Context, companyID string) ([]ValuationPoint, error) {
	records, err := s.store.Records(companyID)
	if err != nil {
		return nil, err
	}
	return ValuationHistory(records), nil
}

// RetryCompensations replays compensating actions that failed earlier.
// Safe to call at any time: applied keys are never replayed.
func (s *Service) RetryCompensations() error { return s.comp.Retry() }

// company reads the registry row, defaulting to an empty company when
// none exists yet (a fresh ledger has zero funding and no valuation).
func (s *Service) company(companyID string) (Company, error) {
	company, err := s.store.Company(companyID)
	if errors.Is(err, ErrNotFound) {
		return Company{ID: companyID, TotalFunding: M(0, "USD"), StaticValuation: M(0, "USD")}, nil
	}
	return company, err
}
