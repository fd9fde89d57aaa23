// Package store persists banks and positions as CSV files under a data
// directory. It owns identity: IDs and creation timestamps are assigned
// here, never by the import engine.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-dev/custodia/internal/model"
)

// Strategy selects how imported records merge with existing ones.
type Strategy string

const (
	// StrategyReplace drops the existing records of that kind first.
	StrategyReplace Strategy = "replace"
	// StrategyAppend keeps existing records and adds the imported ones.
	StrategyAppend Strategy = "append"
)

// ParseStrategy validates a user-supplied merge strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyReplace, StrategyAppend:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q (expected replace or append)", s)
	}
}

// Store reads and writes the data directory.
type Store struct {
	dataDir string
	now     func() time.Time
}

// New creates a Store over a data directory.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir, now: time.Now}
}

func (s *Store) banksPath() string     { return filepath.Join(s.dataDir, "banks.csv") }
func (s *Store) positionsPath() string { return filepath.Join(s.dataDir, "positions.csv") }

// Banks returns all banks. A missing file reads as empty.
func (s *Store) Banks() ([]model.Bank, error) {
	f, err := os.Open(s.banksPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening banks: %w", err)
	}
	defer f.Close()
	return ReadBanks(f)
}

// Bank returns one bank by ID.
func (s *Store) Bank(id int) (model.Bank, bool, error) {
	banks, err := s.Banks()
	if err != nil {
		return model.Bank{}, false, err
	}
	for _, b := range banks {
		if b.ID == id {
			return b, true, nil
		}
	}
	return model.Bank{}, false, nil
}

// AddBank assigns an ID and creation time to a bank and persists it.
func (s *Store) AddBank(bank model.Bank) (model.Bank, error) {
	banks, err := s.Banks()
	if err != nil {
		return model.Bank{}, err
	}
	bank.ID = nextBankID(banks)
	bank.CreatedAt = s.now().UTC()
	return bank, s.saveBanks(append(banks, bank))
}

// ImportBanks persists validated banks under the chosen merge strategy,
// assigning fresh identities. Returns the number of records written.
func (s *Store) ImportBanks(banks []model.Bank, strategy Strategy) (int, error) {
	existing, err := s.Banks()
	if err != nil {
		return 0, err
	}
	if strategy == StrategyReplace {
		existing = nil
	}

	next := nextBankID(existing)
	now := s.now().UTC()
	for _, b := range banks {
		b.ID = next
		b.CreatedAt = now
		next++
		existing = append(existing, b)
	}
	return len(banks), s.saveBanks(existing)
}

// Positions returns all positions. A missing file reads as empty.
func (s *Store) Positions() ([]model.Position, error) {
	f, err := os.Open(s.positionsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening positions: %w", err)
	}
	defer f.Close()
	return ReadPositions(f)
}

// PositionsByBank returns the positions held at one bank.
func (s *Store) PositionsByBank(bankID int) ([]model.Position, error) {
	positions, err := s.Positions()
	if err != nil {
		return nil, err
	}
	var out []model.Position
	for _, p := range positions {
		if p.BankID == bankID {
			out = append(out, p)
		}
	}
	return out, nil
}

// AddPosition assigns an ID and creation time to a position and persists it.
func (s *Store) AddPosition(pos model.Position) (model.Position, error) {
	positions, err := s.Positions()
	if err != nil {
		return model.Position{}, err
	}
	pos.ID = nextPositionID(positions)
	pos.CreatedAt = s.now().UTC()
	return pos, s.savePositions(append(positions, pos))
}

// ImportPositions persists validated positions for one bank under the chosen
// merge strategy. Replace only drops that bank's existing positions; other
// banks are untouched. Returns the number of records written.
func (s *Store) ImportPositions(bankID int, positions []model.Position, strategy Strategy) (int, error) {
	existing, err := s.Positions()
	if err != nil {
		return 0, err
	}
	if strategy == StrategyReplace {
		kept := existing[:0]
		for _, p := range existing {
			if p.BankID != bankID {
				kept = append(kept, p)
			}
		}
		existing = kept
	}

	next := nextPositionID(existing)
	now := s.now().UTC()
	for _, p := range positions {
		p.ID = next
		p.BankID = bankID
		p.CreatedAt = now
		next++
		existing = append(existing, p)
	}
	return len(positions), s.savePositions(existing)
}

func (s *Store) saveBanks(banks []model.Bank) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.banksPath())
	if err != nil {
		return fmt.Errorf("creating banks file: %w", err)
	}
	defer f.Close()
	return WriteBanks(f, banks)
}

func (s *Store) savePositions(positions []model.Position) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.positionsPath())
	if err != nil {
		return fmt.Errorf("creating positions file: %w", err)
	}
	defer f.Close()
	return WritePositions(f, positions)
}

func nextBankID(banks []model.Bank) int {
	max := 0
	for _, b := range banks {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}

func nextPositionID(positions []model.Position) int {
	max := 0
	for _, p := range positions {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
