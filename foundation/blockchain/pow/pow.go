// Package pow implements the proof of work race run by every mining round.
// One goroutine per miner searches for a nonce that, appended to the
// mempool, produces a hash satisfying the difficulty. The first goroutine
// to succeed wins and all the others stop at the top of their next attempt.
package pow

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
)

// ErrNoMiners is returned when a race is started without any miners. Such a
// race could never finish.
var ErrNoMiners = errors.New("no miners to race")

// =============================================================================

// Miner represents the behavior required by an account to take part in a
// mining race.
type Miner interface {
	ID() database.AccountID
	GenerateNonce() uint64
}

// Config represents the input for a mining race.
type Config struct {
	Mempool    string
	Miners     []Miner
	Difficulty uint16
	Window     uint16
	EvHandler  func(v string, args ...any)
}

// Result represents the outcome of a mining race.
type Result struct {
	Nonce     uint64
	Winner    database.AccountID
	Hash      string
	Attempts  uint64
	Duration  time.Duration
	Collision bool // The nonce map recorded a different account for the winning nonce.
}

// Race starts one goroutine per miner and blocks until one of them finds a
// nonce that solves the puzzle or the context is cancelled.
func Race(ctx context.Context, cfg Config) (Result, error) {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if len(cfg.Miners) == 0 {
		return Result{}, ErrNoMiners
	}

	ev("pow: Race: MINING: started: miners[%d] mempool[%d bytes]", len(cfg.Miners), len(cfg.Mempool))
	defer ev("pow: Race: MINING: completed")

	// Cancelling this context is the signal for every search to stop.
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		nonces   = NewNonceMap()
		attempts atomic.Uint64
		once     sync.Once
		won      bool
		result   Result
		wg       sync.WaitGroup
	)

	start := time.Now()

	wg.Add(len(cfg.Miners))
	for _, miner := range cfg.Miners {
		go func(miner Miner) {
			defer wg.Done()

			nonce, hash, solved := search(raceCtx, cfg, miner, nonces, &attempts, ev)
			if !solved {
				return
			}

			// Only the first solution counts. Anyone solving after this
			// leaves nothing behind but their nonce map writes.
			once.Do(func() {
				won = true
				result = Result{
					Nonce:  nonce,
					Winner: miner.ID(),
					Hash:   hash,
				}
				cancel()
			})
		}(miner)
	}

	// Wait for every search to terminate.
	wg.Wait()

	if !won {
		ev("pow: Race: MINING: CANCELLED: attempts[%d]", attempts.Load())
		return Result{}, ctx.Err()
	}

	result.Attempts = attempts.Load()
	result.Duration = time.Since(start)

	if recorded, collided := markCollision(nonces, &result); collided {
		ev("pow: Race: MINING: WARNING: nonce collision: nonce[%d]: recorded[%s]: winner[%s]", result.Nonce, recorded, result.Winner)
	}

	ev("pow: Race: MINING: SOLVED: winner[%s]: nonce[%d]: hash[%s]: attempts[%d]: duration[%v]", result.Winner, result.Nonce, result.Hash, result.Attempts, result.Duration)

	return result, nil
}

// search asks the miner for nonces until one solves the puzzle or the
// race is over.
func search(ctx context.Context, cfg Config, miner Miner, nonces *NonceMap, attempts *atomic.Uint64, ev func(v string, args ...any)) (uint64, string, bool) {
	data := make([]byte, 0, len(cfg.Mempool)+20)

	for {

		// Did someone else win or was the race cancelled.
		if ctx.Err() != nil {
			return 0, "", false
		}

		nonce := miner.GenerateNonce()
		nonces.Record(nonce, miner.ID())

		if n := attempts.Add(1); n%1_000_000 == 0 {
			ev("pow: search: MINING: attempts[%d]", n)
		}

		data = append(data[:0], cfg.Mempool...)
		data = strconv.AppendUint(data, nonce, 10)

		hash := signature.Hash(data)
		if IsHashSolved(cfg.Difficulty, cfg.Window, hash) {
			return nonce, hash, true
		}
	}
}

// markCollision compares the nonce map with the winner the race reported.
// The winner reports its own identity, so a disagreement only sets the
// Collision flag and never changes who won.
func markCollision(nonces *NonceMap, result *Result) (database.AccountID, bool) {
	recorded, exists := nonces.Lookup(result.Nonce)
	if exists && recorded == result.Winner {
		return recorded, false
	}

	result.Collision = true
	return recorded, true
}

// =============================================================================

// IsHashSolved checks the hash contains difficulty consecutive zeros
// somewhere within its first window characters.
func IsHashSolved(difficulty uint16, window uint16, hash string) bool {
	if difficulty == 0 {
		return true
	}

	w := int(window)
	if w > len(hash) {
		w = len(hash)
	}

	return strings.Contains(hash[:w], strings.Repeat("0", int(difficulty)))
}
