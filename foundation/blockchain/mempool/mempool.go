// Package mempool maintains the pool of pending transactions in the order
// they were admitted.
package mempool

import (
	"strings"
	"sync"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
)

// Mempool represents the ordered set of transactions waiting to be settled
// by the next mining round. Order matters since the pool is hashed as one
// string during mining.
type Mempool struct {
	pool []database.Tx
	mu   sync.RWMutex
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool and returns the new size.
func (mp *Mempool) Append(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns a copy of the pool in admission order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}

// String concatenates the wire format of every transaction in admission
// order with no separator. This is the mining input.
func (mp *Mempool) String() string {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var b strings.Builder
	for _, tx := range mp.pool {
		b.WriteString(tx.String())
	}

	return b.String()
}
