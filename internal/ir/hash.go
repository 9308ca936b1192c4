package ir

import (
	"encoding/hex"
	"fmt"

	sha256 "github.com/minio/sha256-simd"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainState = "rankr/state/v1"
	DomainItems = "rankr/items/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StateHash computes the content hash of a SortState.
// Two states hash equal iff they are equal by value, which is what replay
// verification and undo round trips compare.
func StateHash(s SortState) (string, error) {
	canonical, err := MarshalCanonical(CanonicalState(s))
	if err != nil {
		return "", fmt.Errorf("StateHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainState, canonical), nil
}

// ItemsHash computes the content hash of an initial item order.
func ItemsHash(items []Item) (string, error) {
	canonical, err := MarshalCanonical(Group(items))
	if err != nil {
		return "", fmt.Errorf("ItemsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainItems, canonical), nil
}

// MustStateHash is like StateHash but panics on error.
// Use only in tests or when the state was produced by the engine.
func MustStateHash(s SortState) string {
	hash, err := StateHash(s)
	if err != nil {
		panic(err)
	}
	return hash
}
