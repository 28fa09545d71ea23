// Package genesis maintains access to the genesis file and the design
// constants that govern the ledger.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/minerace/foundation/validate"
	"github.com/shopspring/decimal"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date           time.Time       `json:"date"`
	InitialBalance decimal.Decimal `json:"initial_balance"`                                       // Balance every new account starts with.
	MiningReward   decimal.Decimal `json:"mining_reward"`                                         // Reward for winning a mining round.
	Difficulty     uint16          `json:"difficulty" validate:"required,min=1,max=64"`           // Number of consecutive zeros the hash must contain.
	Window         uint16          `json:"window" validate:"required,max=64,gtefield=Difficulty"` // How many leading hex characters are searched for the zeros.
	NonceBound     uint64          `json:"nonce_bound" validate:"required"`                       // Nonce guesses fall in [0, NonceBound).
	TransPerBlock  uint16          `json:"trans_per_block" validate:"required,min=1"`             // Pending transactions that trigger the background miner.
}

// Default returns the constants the ledger runs with when no genesis
// file is provided.
func Default() Genesis {
	return Genesis{
		Date:           time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		InitialBalance: decimal.NewFromInt(5),
		MiningReward:   decimal.RequireFromString("6.25"),
		Difficulty:     3,
		Window:         10,
		NonceBound:     1_000_000_000,
		TransPerBlock:  1,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Values missing from the file
// keep their defaults.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("unmarshal genesis: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis values are usable by the ledger.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return fmt.Errorf("validate genesis: %w", err)
	}

	if g.InitialBalance.IsNegative() {
		return errors.New("validate genesis: initial balance can't be negative")
	}

	if !g.MiningReward.IsPositive() {
		return errors.New("validate genesis: mining reward must be positive")
	}

	return nil
}
