package serialization

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// ChecksumKey is the metadata key holding the hex SHA-256 of the data section.
const ChecksumKey = "sha256"

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares data against a hex checksum from the metadata.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(data []byte, stored string) error {
	want, err := hex.DecodeString(stored)
	if err != nil || len(want) != sha256.Size {
		return errors.Wrapf(ErrChecksumMismatch, "malformed %s %q", ChecksumKey, stored)
	}
	got := ComputeChecksum(data)
	if string(got[:]) != string(want) {
		return errors.Wrapf(ErrChecksumMismatch, "got %x, want %s", got, stored)
	}
	return nil
}
