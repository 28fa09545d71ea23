package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/minerace/foundation/nameservice"
	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List the wallets in the wallet path with their addresses",
	Run: func(cmd *cobra.Command, args []string) {
		ns, err := nameservice.New(walletPath)
		if err != nil {
			log.Fatal(err)
		}

		for _, entry := range ns.Entries() {
			fmt.Printf("%-20s %s\n", entry.Name, entry.Address)
		}
	},
}

func init() {
	rootCmd.AddCommand(namesCmd)
}
