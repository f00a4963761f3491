// Package captable provides the equity ledger at the heart of a
// startup-portfolio platform: it records every financing event (equity,
// debt, grant) and founder allocation for a company, and derives a
// consistent set of financial facts from that ledger.
//
// The core functionalities include:
//   - Ledger Store: validated, company-scoped CRUD for investment
//     records, founders, share configuration, the ESOP pool and the
//     active fundraising round, backed by SQLite.
//   - Valuation & Equity Calculator: pure derivation of post-money
//     valuation, a time-ordered valuation history, and the equity
//     distribution among founders and investors.
//   - ESOP Pool Manager: reserved shares against total shares, the
//     monetary reserve at the current price per share, and utilization
//     against employee allocations.
//   - Summary Aggregator: per-category funding totals recomputed from
//     the full record set on every read.
//   - Change feed: a stream of {company, entity} tokens telling readers
//     that the ledger changed elsewhere; readers always re-fetch.
//
// This package serves as the foundational logic for the `cpt`
// command-line tool; it defines no transport or UI surface of its own.
package captable
