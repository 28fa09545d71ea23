package database

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account represents information stored in the database for an individual account.
type Account struct {
	AccountID AccountID
	PublicKey []byte
	Balance   decimal.Decimal
	Available decimal.Decimal
}

// newAccount constructs a new account value for use.
func newAccount(accountID AccountID, publicKey []byte, balance decimal.Decimal) Account {
	return Account{
		AccountID: accountID,
		PublicKey: publicKey,
		Balance:   balance,
		Available: balance,
	}
}

// =============================================================================

// AccountID represents the human chosen name of an account.
type AccountID string

// IsAccountID verifies the id can travel inside the transaction wire format.
func (a AccountID) IsAccountID() bool {
	return a != "" && !strings.Contains(string(a), fieldSeparator)
}

// =============================================================================

// byAccount provides sorting support by the account id value.
type byAccount []Account

// Len returns the number of accounts in the list.
func (ba byAccount) Len() int {
	return len(ba)
}

// Less helps to sort the list by account id in ascending order.
func (ba byAccount) Less(i, j int) bool {
	return ba[i].AccountID < ba[j].AccountID
}

// Swap moves accounts in the order of the account id value.
func (ba byAccount) Swap(i, j int) {
	ba[i], ba[j] = ba[j], ba[i]
}
