package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign <from-to-value>",
	Short: "Sign a transaction with the wallet's private key",
	Args:  cobra.ExactArgs(1),
	Run:   signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
}

func signRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	// Sign the canonical form so the signature matches what the ledger verifies.
	tx, err := database.ParseTx(args[0])
	if err != nil {
		log.Fatal(err)
	}

	sig, err := signature.Sign([]byte(tx.String()), privateKey)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Tx:       ", tx)
	fmt.Println("Signature:", signature.String(sig))
	fmt.Println("Signer:   ", signature.Address(privateKey.PublicKey))
}
