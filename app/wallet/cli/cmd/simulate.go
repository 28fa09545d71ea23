package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/ardanlabs/minerace/business/core/scenario"
	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/genesis"
	"github.com/ardanlabs/minerace/foundation/blockchain/state"
	"github.com/ardanlabs/minerace/foundation/events"
	"github.com/ardanlabs/minerace/foundation/validate"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	scenarioPath string
	genesisPath  string
	trace        bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scenario against an in-process ledger and print the wallets",
	Run:   simulateRun,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "zblock/scenarios/transfer.yaml", "Path to the scenario file.")
	simulateCmd.Flags().StringVarP(&genesisPath, "genesis", "g", "", "Path to a genesis file, defaults are used when empty.")
	simulateCmd.Flags().BoolVarP(&trace, "trace", "t", false, "Print ledger events as they happen.")
}

func simulateRun(cmd *cobra.Command, args []string) {
	gen := genesis.Default()
	if genesisPath != "" {
		var err error
		if gen, err = genesis.Load(genesisPath); err != nil {
			log.Fatal(err)
		}
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		printFieldErrors(err)
		log.Fatal(err)
	}

	evts := events.New()
	defer evts.Shutdown()

	if trace {
		id := uuid.NewString()
		ch := evts.Acquire(id)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for e := range ch {
				fmt.Println(e)
			}
		}()
		defer func() {
			evts.Release(id)
			<-done
		}()
	}

	st, err := state.New(state.Config{
		Genesis:   gen,
		EvHandler: evts.Send,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer st.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := scenario.Run(ctx, st, sc)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Scenario: %s\n\n", report.Name)
	for _, result := range report.Results {
		printResult(result)
	}
}

func printResult(result scenario.Result) {
	step := result.Step

	switch step.Action {
	case scenario.ActionTransfer:
		status := "REJECTED"
		if result.Admitted {
			status = "ADMITTED"
		}
		fmt.Printf("[%d] transfer %s -> %s %s: %s\n", result.Index, step.From, step.To, step.Value, status)

	case scenario.ActionMine:
		r := result.Round
		fmt.Printf("[%d] mine round[%s]\n", result.Index, r.ID)
		fmt.Printf("    winner[%s] nonce[%d] reward[%s] trans[%d]\n", r.Winner, r.Nonce, r.Reward, len(r.Trans))
		fmt.Printf("    hash[%s] attempts[%d] duration[%v]\n", r.Hash, r.Attempts, r.Duration)
		if r.Collision {
			fmt.Println("    WARNING: the winning nonce was proposed by more than one account")
		}

	case scenario.ActionShow:
		fmt.Printf("[%d] wallets\n", result.Index)
		printWallets(result.Accounts)
	}
}

// printWallets prints every account with its settled and available balance.
func printWallets(accounts []database.Account) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "    ACCOUNT\tBALANCE\tAVAILABLE")
	for _, account := range accounts {
		fmt.Fprintf(w, "    %s\t%s\t%s\n", account.AccountID, account.Balance, account.Available)
	}
}

// printFieldErrors prints one line per scenario field that failed validation.
func printFieldErrors(err error) {
	fields := validate.GetFieldErrors(err).Fields()
	if len(fields) == 0 {
		return
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Scenario is invalid:")
	for _, name := range names {
		fmt.Printf("    %s: %s\n", name, fields[name])
	}
}
