package state

import (
	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
)

// SubmitTx validates the transaction and its signature and, if both are
// good, adds it to the mempool. The sender's available balance is reduced
// right away so the same value can't be pending twice. A rejected
// transaction returns false and leaves the ledger untouched.
func (s *State) SubmitTx(tx database.Tx, sig []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.db.Query(tx.FromID())
	if err != nil {
		s.evHandler("state: SubmitTx: REJECTED: tx[%s]: %s", tx, err)
		return false
	}

	// The signature must be over the exact wire format of the transaction.
	if err := signature.Verify(from.PublicKey, []byte(tx.String()), sig); err != nil {
		s.evHandler("state: SubmitTx: REJECTED: tx[%s]: %s", tx, err)
		return false
	}

	if err := s.db.Reserve(tx); err != nil {
		s.evHandler("state: SubmitTx: REJECTED: tx[%s]: %s", tx, err)
		return false
	}

	pending := s.mempool.Append(tx)
	s.evHandler("state: SubmitTx: ADMITTED: tx[%s]: sig[%s]: pending[%d]", tx, signature.String(sig)[:16], pending)

	if s.Worker != nil && pending >= int(s.genesis.TransPerBlock) {
		s.Worker.SignalStartMining()
	}

	return true
}

// SubmitRawTx parses the transaction from its wire format and submits it.
// A malformed transaction is an error, a rejected transaction is false.
func (s *State) SubmitRawTx(trx string, sig []byte) (bool, error) {
	tx, err := database.ParseTx(trx)
	if err != nil {
		return false, err
	}

	return s.SubmitTx(tx, sig), nil
}
