package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const pinSalt = "EmotionAnalyzer2024"

// ErrInvalidPin rejects anything that is not exactly four digits.
var ErrInvalidPin = errors.New("PIN은 4자리 숫자여야 합니다")

// PinManager guards app access with a 4-digit PIN stored as a salted
// SHA-256 hash at an injected file path.
type PinManager struct {
	path   string
	logger *zap.Logger
}

// NewPinManager creates a PIN manager backed by the given file.
func NewPinManager(path string, logger *zap.Logger) *PinManager {
	return &PinManager{path: path, logger: logger}
}

// IsSet reports whether a PIN has been configured.
func (p *PinManager) IsSet() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// Set stores the PIN hash. Non-4-digit input is rejected before any
// file I/O.
func (p *PinManager) Set(pin string) error {
	if !validPin(pin) {
		return ErrInvalidPin
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("creating PIN directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(hashPin(pin)), 0o600); err != nil {
		return fmt.Errorf("writing PIN file: %w", err)
	}
	p.logger.Info("PIN configured")
	return nil
}

// Verify compares the input against the stored hash. Any failure —
// malformed input, missing file, mismatch — verifies false.
func (p *PinManager) Verify(pin string) bool {
	if !validPin(pin) {
		return false
	}
	saved, err := os.ReadFile(p.path)
	if err != nil {
		p.logger.Warn("PIN verification failed", zap.Error(err))
		return false
	}
	return string(saved) == hashPin(pin)
}

// Reset removes the stored PIN.
func (p *PinManager) Reset() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing PIN file: %w", err)
	}
	p.logger.Info("PIN reset")
	return nil
}

func validPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin + pinSalt))
	return hex.EncodeToString(sum[:])
}
