package crypto

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/sha3"
)

const (
	HashSize = 32
)

/*
	Hash is the legacy keccak256 digest used by evm chains. Stored payloads are identified
	by their keccak256 hash so a retry can prove it carries exactly the withheld bytes.
*/

// Hasher() returns the global hashing algorithm used
func Hasher() hash.Hash { return sha3.NewLegacyKeccak256() }

// Hash() executes the global hashing algorithm on input bytes
func Hash(msg []byte) []byte {
	h := Hasher()
	h.Write(msg)
	return h.Sum(nil)
}

// HashString() returns the hex byte version of a hash
func HashString(msg []byte) string { return hex.EncodeToString(Hash(msg)) }
