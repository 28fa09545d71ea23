package state

import (
	"fmt"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/genesis"
	"github.com/ardanlabs/minerace/foundation/blockchain/wallet"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveMempool returns a copy of the mempool in admission order.
func (s *State) RetrieveMempool() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// RetrieveAccounts returns a copy of every account sorted by id.
func (s *State) RetrieveAccounts() []database.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Copy()
}

// RetrieveWallet returns the wallet for the account.
func (s *State) RetrieveWallet(accountID database.AccountID) (*wallet.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.wallets[accountID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", database.ErrUnknownAccount, accountID)
	}

	return w, nil
}
