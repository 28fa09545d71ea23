package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/ardanlabs/minerace/foundation/nameservice"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <from-to-value> <signature>",
	Short: "Print the wallet that signed a transaction",
	Args:  cobra.ExactArgs(2),
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) {
	tx, err := database.ParseTx(args[0])
	if err != nil {
		log.Fatal(err)
	}

	sig, err := hexutil.Decode(args[1])
	if err != nil {
		log.Fatal(err)
	}

	address, err := signature.FromAddress([]byte(tx.String()), sig)
	if err != nil {
		log.Fatal(err)
	}

	ns, err := nameservice.New(walletPath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Tx:    ", tx)
	fmt.Println("Signer:", ns.Lookup(address), address)
}
