// Package state is the core API for the ledger and implements all the
// business rules for admitting transactions and settling mining rounds.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/genesis"
	"github.com/ardanlabs/minerace/foundation/blockchain/mempool"
	"github.com/ardanlabs/minerace/foundation/blockchain/wallet"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of transactions and mining rounds.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the ledger. A single mutex serializes admission, queries and
// mining rounds, so a round has exclusive use of the ledger while it runs.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	evHandler EventHandler

	db      *database.Database
	mempool *mempool.Mempool
	wallets map[database.AccountID]*wallet.Wallet

	Worker Worker
}

// New constructs a new ledger for account and transaction management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}

	state := State{
		genesis:   cfg.Genesis,
		evHandler: ev,

		db:      database.New(cfg.Genesis),
		mempool: mempool.New(),
		wallets: make(map[database.AccountID]*wallet.Wallet),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start mining in the background.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all background mining.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
