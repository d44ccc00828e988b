// Package gameid mints sortable identifiers for hands and connections.
// IDs are UUIDv7 values rendered as 26 characters of Crockford base32,
// optionally behind a TypeID-style prefix such as "hand_".
package gameid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

// Prefixes used across the server
const (
	PrefixHand = "hand"
	PrefixConn = "conn"
)

// Generate returns a bare 26-character ID
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system random source does
		id = uuid.New()
	}
	return encode(id)
}

// New returns an ID of the form prefix_xxxxxxxxxxxxxxxxxxxxxxxxxx
func New(prefix string) string {
	if prefix == "" {
		return Generate()
	}
	return prefix + "_" + Generate()
}

// encode renders the 128 bits as 130 bits (two leading zero bits) in 5-bit groups
func encode(id uuid.UUID) string {
	var out [encodedLen]byte
	for i := 0; i < encodedLen; i++ {
		// bit offset of this group within the 128-bit value, may start at -2
		start := i*5 - 2
		var v byte
		for b := 0; b < 5; b++ {
			pos := start + b
			v <<= 1
			if pos < 0 {
				continue
			}
			if id[pos/8]&(0x80>>(pos%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks if an ID is valid, with or without a prefix
func Validate(id string) error {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		if i == 0 {
			return fmt.Errorf("empty prefix in %q", id)
		}
		id = id[i+1:]
	}

	if len(id) != encodedLen {
		return fmt.Errorf("ID must be exactly %d characters, got %d", encodedLen, len(id))
	}

	// First character carries only three significant bits
	if id[0] > '7' {
		return fmt.Errorf("ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
