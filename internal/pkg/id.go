package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const gameIDLength = 6

// game IDs are short join codes typed by the second player
const gameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateGameID returns a short human-readable game code.
func GenerateGameID() (string, error) {
	code := make([]byte, gameIDLength)

	for i := range code {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(gameIDAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate game id: %w", err)
		}

		code[i] = gameIDAlphabet[index.Int64()]
	}

	return string(code), nil
}

// GeneratePlayerID returns an opaque player session identifier.
func GeneratePlayerID() (string, error) {
	raw := make([]byte, 16)

	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate player id: %w", err)
	}

	return hex.EncodeToString(raw), nil
}
