package state

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/pow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Round represents the outcome of a settled mining round.
type Round struct {
	ID        string
	Nonce     uint64
	Winner    database.AccountID
	Hash      string
	Reward    decimal.Decimal
	Trans     []database.Tx
	Attempts  uint64
	Duration  time.Duration
	Collision bool
}

// =============================================================================

// RunMiningRound races every account for a nonce that solves the puzzle for
// the current mempool. The winner is credited with the mining reward and
// every pending transaction is settled in admission order. The ledger is
// locked for the duration of the round.
func (s *State) RunMiningRound(ctx context.Context) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roundID := uuid.NewString()

	s.evHandler("state: RunMiningRound: MINING: round[%s]: started: pending[%d]", roundID, s.mempool.Count())
	defer s.evHandler("state: RunMiningRound: MINING: round[%s]: completed", roundID)

	// One miner per registered account, in account order.
	accounts := s.db.Copy()
	miners := make([]pow.Miner, 0, len(accounts))
	for _, account := range accounts {
		miners = append(miners, s.wallets[account.AccountID])
	}

	trans := s.mempool.Copy()

	result, err := pow.Race(ctx, pow.Config{
		Mempool:    s.mempool.String(),
		Miners:     miners,
		Difficulty: s.genesis.Difficulty,
		Window:     s.genesis.Window,
		EvHandler:  s.evHandler,
	})
	if err != nil {
		s.evHandler("state: RunMiningRound: MINING: round[%s]: ERROR: %s", roundID, err)
		return Round{}, err
	}

	s.evHandler("state: RunMiningRound: MINING: round[%s]: apply mining reward: winner[%s]", roundID, result.Winner)

	if err := s.db.ApplyMiningReward(result.Winner); err != nil {
		return Round{}, fmt.Errorf("round[%s]: apply mining reward: %w", roundID, err)
	}

	s.evHandler("state: RunMiningRound: MINING: round[%s]: settle transactions: trans[%d]", roundID, len(trans))

	// Transactions were validated when admitted and are not checked again.
	for _, tx := range trans {
		if err := s.db.ApplyTransaction(tx); err != nil {
			return Round{}, fmt.Errorf("round[%s]: settle tx[%s]: %w", roundID, tx, err)
		}
	}
	s.mempool.Truncate()

	round := Round{
		ID:        roundID,
		Nonce:     result.Nonce,
		Winner:    result.Winner,
		Hash:      result.Hash,
		Reward:    s.genesis.MiningReward,
		Trans:     trans,
		Attempts:  result.Attempts,
		Duration:  result.Duration,
		Collision: result.Collision,
	}

	return round, nil
}
