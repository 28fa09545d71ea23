// Package signature provides helper functions for handling the ledger
// signature and hashing needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// raceID is an arbitrary number added to the recovery id of every signature.
// It makes it clear the signature was produced for this ledger. Ethereum and
// Bitcoin do the same with the value of 27.
const raceID = 29

// Set of error variables for signature handling.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// =============================================================================

// Hash returns the sha256 digest of the data as a lowercase hex string
// without a 0x prefix.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return common.Bytes2Hex(hash[:])
}

// GenerateKey produces a new secp256k1 key pair.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// Sign uses the specified private key to sign the message.
func Sign(message []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	data := stamp(message)

	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, err
	}

	// Make sure the key we recover is the key that signed.
	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return nil, err
	}
	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), data, sig[:crypto.RecoveryIDOffset]) {
		return nil, ErrInvalidSignature
	}

	sig[crypto.RecoveryIDOffset] += raceID

	return sig, nil
}

// Verify checks the signature was produced over the message by the private
// key belonging to the specified public key.
func Verify(publicKey []byte, message []byte, sig []byte) error {
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}

	// Check the recovery id is either 0 or 1.
	v := sig[crypto.RecoveryIDOffset] - raceID
	if v != 0 && v != 1 {
		return fmt.Errorf("%w: recovery id", ErrInvalidSignature)
	}

	if _, err := crypto.UnmarshalPubkey(publicKey); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}

	if !crypto.VerifySignature(publicKey, stamp(message), sig[:crypto.RecoveryIDOffset]) {
		return ErrInvalidSignature
	}

	return nil
}

// FromAddress extracts the address of the key that signed the message.
func FromAddress(message []byte, sig []byte) (string, error) {
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}

	raw := make([]byte, crypto.SignatureLength)
	copy(raw, sig)
	raw[crypto.RecoveryIDOffset] -= raceID

	publicKey, err := crypto.SigToPub(stamp(message), raw)
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(*publicKey).String(), nil
}

// PublicKeyBytes returns the uncompressed encoding of the public key.
func PublicKeyBytes(publicKey ecdsa.PublicKey) []byte {
	return crypto.FromECDSAPub(&publicKey)
}

// Address returns the checksummed address for the public key.
func Address(publicKey ecdsa.PublicKey) string {
	return crypto.PubkeyToAddress(publicKey).String()
}

// String returns the signature or key bytes as a 0x prefixed hex string.
func String(b []byte) string {
	return hexutil.Encode(b)
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents the message with
// the ledger stamp embedded into the final hash.
func stamp(message []byte) []byte {

	// Hash the message into a 32 byte array. This will provide
	// a data length consistency with all data.
	msgHash := crypto.Keccak256(message)

	// This stamp is used so signatures we produce when signing data
	// are always unique to this ledger.
	stamp := []byte("\x19Minerace Signed Message:\n32")

	return crypto.Keccak256(stamp, msgHash)
}
