package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <from-to-value>",
	Short: "Validate a transaction in wire format",
	Args:  cobra.ExactArgs(1),
	Run:   parseRun,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseRun(cmd *cobra.Command, args []string) {
	tx, err := database.ParseTx(args[0])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("From: ", tx.FromID())
	fmt.Println("To:   ", tx.ToID())
	fmt.Println("Value:", tx.Value())
	fmt.Println("Wire: ", tx)
}
