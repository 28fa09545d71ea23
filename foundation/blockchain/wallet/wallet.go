// Package wallet provides the account side of the ledger. A wallet holds the
// private key for an account, signs transfers and proposes nonces during a
// mining race. It never holds a balance, the ledger owns those.
package wallet

import (
	"crypto/ecdsa"
	"math/rand/v2"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
)

// Ledger represents the behavior a wallet requires from the ledger owner.
type Ledger interface {
	IsAccount(accountID database.AccountID) bool
	SubmitTx(tx database.Tx, sig []byte) bool
	Balance(accountID database.AccountID) (decimal.Decimal, error)
	AvailableBalance(accountID database.AccountID) (decimal.Decimal, error)
}

// Wallet represents an account's identity and signing capability.
type Wallet struct {
	id         database.AccountID
	privateKey *ecdsa.PrivateKey
	nonceBound uint64
	ledger     Ledger
}

// New constructs a wallet for the account. A nonce bound of zero lets
// nonces cover the full 64 bit range.
func New(id database.AccountID, privateKey *ecdsa.PrivateKey, nonceBound uint64, ledger Ledger) *Wallet {
	return &Wallet{
		id:         id,
		privateKey: privateKey,
		nonceBound: nonceBound,
		ledger:     ledger,
	}
}

// ID returns the account id for the wallet.
func (w *Wallet) ID() database.AccountID {
	return w.id
}

// PublicKey returns the encoded public key the ledger verifies signatures with.
func (w *Wallet) PublicKey() []byte {
	return signature.PublicKeyBytes(w.privateKey.PublicKey)
}

// Address returns the address derived from the wallet's public key.
func (w *Wallet) Address() string {
	return signature.Address(w.privateKey.PublicKey)
}

// Sign signs the message with the wallet's private key.
func (w *Wallet) Sign(message []byte) ([]byte, error) {
	return signature.Sign(message, w.privateKey)
}

// Transfer composes and signs a transaction sending value to the receiver
// and submits it to the ledger. It returns whether the ledger admitted it.
func (w *Wallet) Transfer(to database.AccountID, value decimal.Decimal) bool {

	// Don't bother the ledger with transfers it would reject anyway.
	if !w.ledger.IsAccount(to) {
		return false
	}

	available, err := w.ledger.AvailableBalance(w.id)
	if err != nil || available.LessThan(value) {
		return false
	}

	tx, err := database.NewTx(w.id, to, value)
	if err != nil {
		return false
	}

	sig, err := w.Sign([]byte(tx.String()))
	if err != nil {
		return false
	}

	return w.ledger.SubmitTx(tx, sig)
}

// GenerateNonce returns a random guess for a mining race. Values are not
// unique across calls or wallets.
func (w *Wallet) GenerateNonce() uint64 {
	if w.nonceBound == 0 {
		return rand.Uint64()
	}
	return rand.Uint64N(w.nonceBound)
}

// Balance returns the settled balance for the wallet's account.
func (w *Wallet) Balance() (decimal.Decimal, error) {
	return w.ledger.Balance(w.id)
}

// AvailableBalance returns the balance that isn't reserved by pending
// transactions.
func (w *Wallet) AvailableBalance() (decimal.Decimal, error) {
	return w.ledger.AvailableBalance(w.id)
}
