// Package scenario loads and runs scripted sessions against the ledger. A
// scenario registers a set of accounts and then executes a list of steps:
// transfers between accounts, mining rounds and balance snapshots.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/state"
	"github.com/ardanlabs/minerace/foundation/blockchain/wallet"
	"github.com/ardanlabs/minerace/foundation/validate"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Set of actions a step can perform.
const (
	ActionTransfer = "transfer"
	ActionMine     = "mine"
	ActionShow     = "show"
)

// Scenario represents a scripted session.
type Scenario struct {
	Name     string   `yaml:"name"`
	Accounts []string `yaml:"accounts" validate:"required,min=1,dive,required,excludes=-"`
	Steps    []Step   `yaml:"steps" validate:"dive"`
}

// Step represents a single action in a scenario.
type Step struct {
	Action string `yaml:"action" validate:"required,oneof=transfer mine show"`
	From   string `yaml:"from" validate:"required_if=Action transfer"`
	To     string `yaml:"to" validate:"required_if=Action transfer"`
	Value  string `yaml:"value" validate:"required_if=Action transfer"`
}

// Load reads and validates the scenario file at the specified path.
func Load(path string) (Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}

	return Parse(content)
}

// Parse decodes and validates a scenario document.
func Parse(content []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(content, &sc); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal scenario: %w", err)
	}

	if err := validate.Check(sc); err != nil {
		return Scenario{}, fmt.Errorf("validate scenario: %w", err)
	}

	for i, step := range sc.Steps {
		if step.Action != ActionTransfer {
			continue
		}
		if _, err := decimal.NewFromString(step.Value); err != nil {
			return Scenario{}, fmt.Errorf("validate scenario: step[%d]: value: %w", i, err)
		}
	}

	return sc, nil
}

// =============================================================================

// Result represents the outcome of a single step.
type Result struct {
	Index    int
	Step     Step
	Admitted bool
	Round    state.Round
	Accounts []database.Account
}

// Report represents the outcome of a scenario run.
type Report struct {
	Name    string
	Wallets map[string]database.AccountID // Scenario name to registered id.
	Results []Result
}

// Run executes the scenario against the ledger. Account names are mapped to
// the ids the ledger hands out, so a name that collides with an existing
// account still works. A rejected transfer is recorded, not an error.
func Run(ctx context.Context, st *state.State, sc Scenario) (Report, error) {
	report := Report{
		Name:    sc.Name,
		Wallets: make(map[string]database.AccountID),
	}

	wallets := make(map[string]*wallet.Wallet)
	for _, name := range sc.Accounts {
		w, err := st.CreateAccount(database.AccountID(name))
		if err != nil {
			return Report{}, fmt.Errorf("create account[%s]: %w", name, err)
		}
		wallets[name] = w
		report.Wallets[name] = w.ID()
	}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := Result{
			Index: i,
			Step:  step,
		}

		switch step.Action {
		case ActionTransfer:
			from, exists := wallets[step.From]
			if !exists {
				return report, fmt.Errorf("step[%d]: unknown account %q", i, step.From)
			}

			// The receiver may be a name from this scenario or an id
			// already on the ledger.
			to := database.AccountID(step.To)
			if w, exists := wallets[step.To]; exists {
				to = w.ID()
			}

			value, err := decimal.NewFromString(step.Value)
			if err != nil {
				return report, fmt.Errorf("step[%d]: value: %w", i, err)
			}

			result.Admitted = from.Transfer(to, value)

		case ActionMine:
			round, err := st.RunMiningRound(ctx)
			if err != nil {
				return report, fmt.Errorf("step[%d]: mine: %w", i, err)
			}
			result.Round = round

		case ActionShow:
			result.Accounts = st.RetrieveAccounts()

		default:
			return report, errors.New("unknown action " + step.Action)
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}
