package state

import (
	"fmt"
	"math/rand/v2"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/ardanlabs/minerace/foundation/blockchain/wallet"
)

// suffixDigits is the number of random digits appended to an account id
// that is already taken.
const suffixDigits = 4

// CreateAccount registers a new account and returns its wallet. When the id
// is taken, random digits are appended until it is unique. Every new account
// starts with the genesis initial balance.
func (s *State) CreateAccount(accountID database.AccountID) (*wallet.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createAccount(accountID)
}

func (s *State) createAccount(accountID database.AccountID) (*wallet.Wallet, error) {
	if _, exists := s.wallets[accountID]; exists {
		unique := accountID + database.AccountID(randomDigits())
		s.evHandler("state: CreateAccount: account[%s] exists: trying[%s]", accountID, unique)
		return s.createAccount(unique)
	}

	privateKey, err := signature.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	w := wallet.New(accountID, privateKey, s.genesis.NonceBound, s)

	if _, err := s.db.AddAccount(accountID, w.PublicKey()); err != nil {
		return nil, err
	}
	s.wallets[accountID] = w

	s.evHandler("state: CreateAccount: account[%s]: address[%s]: balance[%s]", accountID, w.Address(), s.genesis.InitialBalance)

	return w, nil
}

// randomDigits returns a fixed width string of random decimal digits.
func randomDigits() string {
	limit := 1
	for range suffixDigits {
		limit *= 10
	}
	return fmt.Sprintf("%0*d", suffixDigits, rand.IntN(limit))
}
