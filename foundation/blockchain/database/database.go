// Package database maintains the in memory tables of account information:
// settled balances, available balances and the public keys used to verify
// transactions.
package database

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ardanlabs/minerace/foundation/blockchain/genesis"
	"github.com/shopspring/decimal"
)

// Set of error variables for account handling.
var (
	ErrUnknownAccount    = errors.New("unknown account")
	ErrAccountExists     = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// =============================================================================

// Database manages data related to accounts who have transacted on the ledger.
type Database struct {
	mu sync.RWMutex

	genesis  genesis.Genesis
	accounts map[AccountID]Account
}

// New constructs a new database that gives new accounts the genesis
// initial balance.
func New(genesis genesis.Genesis) *Database {
	return &Database{
		genesis:  genesis,
		accounts: make(map[AccountID]Account),
	}
}

// Exists reports whether the account is registered.
func (db *Database) Exists(accountID AccountID) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	_, exists := db.accounts[accountID]
	return exists
}

// AddAccount registers a new account with the initial balance.
func (db *Database) AddAccount(accountID AccountID, publicKey []byte) (Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.accounts[accountID]; exists {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountExists, accountID)
	}

	account := newAccount(accountID, publicKey, db.genesis.InitialBalance)
	db.accounts[accountID] = account

	return account, nil
}

// Query returns a copy of the account information.
func (db *Database) Query(accountID AccountID) (Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	account, exists := db.accounts[accountID]
	if !exists {
		return Account{}, fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
	}

	return account, nil
}

// Reserve debits the available balance of the sender so the value can't be
// spent twice while the transaction is pending. The settled balance is not
// touched.
func (db *Database) Reserve(tx Tx) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	from, exists := db.accounts[tx.FromID()]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, tx.FromID())
	}

	if _, exists := db.accounts[tx.ToID()]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, tx.ToID())
	}

	if from.Available.LessThan(tx.Value()) {
		return fmt.Errorf("%w: available %s, needed %s", ErrInsufficientFunds, from.Available, tx.Value())
	}

	from.Available = from.Available.Sub(tx.Value())
	db.accounts[tx.FromID()] = from

	return nil
}

// ApplyTransaction moves the value of a reserved transaction between the
// two parties. The sender's available balance was debited by Reserve, the
// receiver can spend the value from now on.
func (db *Database) ApplyTransaction(tx Tx) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	from, exists := db.accounts[tx.FromID()]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, tx.FromID())
	}

	if _, exists := db.accounts[tx.ToID()]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, tx.ToID())
	}

	from.Balance = from.Balance.Sub(tx.Value())
	db.accounts[tx.FromID()] = from

	// Read the receiver after the debit in case this is a transfer to self.
	to := db.accounts[tx.ToID()]
	to.Balance = to.Balance.Add(tx.Value())
	to.Available = to.Available.Add(tx.Value())
	db.accounts[tx.ToID()] = to

	return nil
}

// ApplyMiningReward gives the specified account the mining reward.
func (db *Database) ApplyMiningReward(accountID AccountID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	account, exists := db.accounts[accountID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
	}

	account.Balance = account.Balance.Add(db.genesis.MiningReward)
	account.Available = account.Available.Add(db.genesis.MiningReward)
	db.accounts[accountID] = account

	return nil
}

// Copy returns a copy of the accounts sorted by account id.
func (db *Database) Copy() []Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make([]Account, 0, len(db.accounts))
	for _, account := range db.accounts {
		accounts = append(accounts, account)
	}
	sort.Sort(byAccount(accounts))

	return accounts
}

// TotalBalance returns the sum of all settled balances.
func (db *Database) TotalBalance() decimal.Decimal {
	db.mu.RLock()
	defer db.mu.RUnlock()

	total := decimal.Zero
	for _, account := range db.accounts {
		total = total.Add(account.Balance)
	}

	return total
}
