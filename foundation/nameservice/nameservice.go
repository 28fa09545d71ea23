// Package nameservice reads a folder of wallet key files and creates a name
// lookup for the addresses they control.
package nameservice

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ardanlabs/minerace/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyExtension is the file extension of a saved private key.
const KeyExtension = ".ecdsa"

// Entry represents a single wallet known to the name service.
type Entry struct {
	Name    string
	Address string
}

// NameService maintains a map of addresses for name lookup.
type NameService struct {
	names map[string]string
}

// New constructs a name service with the key files found under root. A
// missing folder produces an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		names: make(map[string]string),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			if fileName == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != KeyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		address := signature.Address(privateKey.PublicKey)
		ns.names[address] = strings.TrimSuffix(filepath.Base(fileName), KeyExtension)

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified address. The address itself is
// returned when no wallet is known for it.
func (ns *NameService) Lookup(address string) string {
	name, exists := ns.names[address]
	if !exists {
		return address
	}
	return name
}

// Entries returns the known wallets sorted by name.
func (ns *NameService) Entries() []Entry {
	entries := make([]Entry, 0, len(ns.names))
	for address, name := range ns.names {
		entries = append(entries, Entry{Name: name, Address: address})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries
}
