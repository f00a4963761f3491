package captable

import "sync"

// Entity names a kind of ledger row a change token refers to.
type Entity string

// Entities announced on the feed.
const (
	EntityRecords  Entity = "records"
	EntityFounders Entity = "founders"
	EntityShares   Entity = "shares"
	EntityEsop     Entity = "esop"
	EntityRound    Entity = "round"
)

// Change is a token announcing that something changed for a company.
// It carries no payload beyond the scope of the change: consumers must
// re-run their own read against the store and never assume the token
// holds the new value.
type Change struct {
	CompanyID string
	Entity    Entity
}

// Feed fans change tokens out to subscribers. Each subscriber channel
// holds at most one pending token per subscription: publishing to a
// subscriber that has not consumed the previous token is a no-op, since
// a pending token already means "refetch".
type Feed struct {
	mu   sync.Mutex
	subs map[subKey][]chan Change
}

type subKey struct {
	companyID string
	entity    Entity
}

// NewFeed creates an empty change feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[subKey][]chan Change)}
}

// Subscribe returns a channel of change tokens for the given company and
// entity. The channel is closed by Close.
func (f *Feed) Subscribe(companyID string, entity Entity) <-chan Change {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan Change, 1)
	key := subKey{companyID, entity}
	f.subs[key] = append(f.subs[key], ch)
	return ch
}

// Publish delivers a change token to every subscriber of its company and
// entity. It never blocks the mutating caller.
func (f *Feed) Publish(c Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[subKey{c.CompanyID, c.Entity}] {
		select {
		case ch <- c:
		default: // a token is already pending, coalesce
		}
	}
}

// Close closes all subscriber channels and empties the feed.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, chans := range f.subs {
		for _, ch := range chans {
			close(ch)
		}
		delete(f.subs, key)
	}
}
