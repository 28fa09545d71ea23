package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new key pair and save the private key",
	Run:   keygenRun,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}

func keygenRun(cmd *cobra.Command, args []string) {
	privateKey, err := signature.GenerateKey()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(walletPath, 0755); err != nil {
		log.Fatal(err)
	}

	path := getPrivateKeyPath()
	if err := crypto.SaveECDSA(path, privateKey); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Saved:     ", path)
	fmt.Println("Address:   ", signature.Address(privateKey.PublicKey))
	fmt.Println("Public Key:", signature.String(signature.PublicKeyBytes(privateKey.PublicKey)))
}
