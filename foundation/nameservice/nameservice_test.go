package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/ardanlabs/minerace/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_NameService(t *testing.T) {
	t.Log("Given the need to resolve addresses to wallet names.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the folder holds two wallets.", testID)
		{
			root := t.TempDir()

			addresses := make(map[string]string)
			for _, name := range []string{"bob", "alice"} {
				pk, err := signature.GenerateKey()
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to generate a key: %v", failed, testID, err)
				}
				if err := crypto.SaveECDSA(filepath.Join(root, name+nameservice.KeyExtension), pk); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to save the key: %v", failed, testID, err)
				}
				addresses[name] = signature.Address(pk.PublicKey)
			}

			ns, err := nameservice.New(root)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to load the folder: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to load the folder.", success, testID)

			for name, address := range addresses {
				if got := ns.Lookup(address); got != name {
					t.Fatalf("\t%s\tTest %d:\tShould resolve %s to %s, got %s.", failed, testID, address, name, got)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould resolve every address.", success, testID)

			unknown := "0x0000000000000000000000000000000000000000"
			if got := ns.Lookup(unknown); got != unknown {
				t.Fatalf("\t%s\tTest %d:\tShould return an unknown address as is, got %s.", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould return an unknown address as is.", success, testID)

			entries := ns.Entries()
			if len(entries) != 2 || entries[0].Name != "alice" || entries[1].Name != "bob" {
				t.Fatalf("\t%s\tTest %d:\tShould list the wallets sorted by name: %v", failed, testID, entries)
			}
			t.Logf("\t%s\tTest %d:\tShould list the wallets sorted by name.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the folder doesn't exist.", testID)
		{
			ns, err := nameservice.New(filepath.Join(t.TempDir(), "missing"))
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould not fail on a missing folder: %v", failed, testID, err)
			}
			if len(ns.Entries()) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould have no entries.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould produce an empty name service.", success, testID)
		}
	}
}
