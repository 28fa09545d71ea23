package pow

import (
	"sync"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
)

// NonceMap records which account generated each nonce during a race. Every
// attempt is written, solved or not. When two accounts generate the same
// nonce the later write wins.
type NonceMap struct {
	mu sync.Mutex
	m  map[uint64]database.AccountID
}

// NewNonceMap constructs an empty nonce map.
func NewNonceMap() *NonceMap {
	return &NonceMap{
		m: make(map[uint64]database.AccountID),
	}
}

// Record stores the account that generated the nonce.
func (nm *NonceMap) Record(nonce uint64, accountID database.AccountID) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.m[nonce] = accountID
}

// Lookup returns the last account that generated the nonce.
func (nm *NonceMap) Lookup(nonce uint64) (database.AccountID, bool) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	accountID, exists := nm.m[nonce]
	return accountID, exists
}

// Len returns the number of distinct nonces recorded.
func (nm *NonceMap) Len() int {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	return len(nm.m)
}
