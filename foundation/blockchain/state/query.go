package state

import (
	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// IsAccount reports whether the account is registered.
func (s *State) IsAccount(accountID database.AccountID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Exists(accountID)
}

// QueryAccount returns a copy of the account from the database.
func (s *State) QueryAccount(accountID database.AccountID) (database.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Query(accountID)
}

// Balance returns the settled balance for the account.
func (s *State) Balance(accountID database.AccountID) (decimal.Decimal, error) {
	account, err := s.QueryAccount(accountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return account.Balance, nil
}

// AvailableBalance returns the settled balance minus the value of the
// account's pending transactions.
func (s *State) AvailableBalance(accountID database.AccountID) (decimal.Decimal, error) {
	account, err := s.QueryAccount(accountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return account.Available, nil
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Count()
}

// QueryTotalSupply returns the sum of all settled balances.
func (s *State) QueryTotalSupply() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.TotalBalance()
}
