package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/finsight-dev/finsight/internal/model"
)

// Snapshot is an immutable view of the ledger at load time. Computations
// downstream read it concurrently without coordination; nothing mutates it.
type Snapshot struct {
	Transactions []model.Transaction
	Skipped      int // malformed rows dropped during load
}

// Unsettled returns the transactions still awaiting settlement.
func (s *Snapshot) Unsettled() []model.Transaction {
	var out []model.Transaction
	for _, t := range s.Transactions {
		if !t.Settled {
			out = append(out, t)
		}
	}
	return out
}

// Participants derives the participant set: every payer plus every split
// member, sorted by name.
func (s *Snapshot) Participants() []string {
	seen := make(map[string]bool)
	for _, t := range s.Transactions {
		if t.Payer != "" {
			seen[t.Payer] = true
		}
		for name := range t.Split {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Service reads ledger snapshots from a project root.
type Service struct {
	root string
}

// NewService creates a ledger Service rooted at root.
func NewService(root string) *Service {
	return &Service{root: root}
}

// Load reads <root>/ledger/transactions.csv into a Snapshot. A missing file
// yields an empty snapshot, not an error.
func (s *Service) Load() (*Snapshot, error) {
	path := s.Path()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, skipped, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return &Snapshot{Transactions: txns, Skipped: skipped}, nil
}

// Save writes a full snapshot back to <root>/ledger/transactions.csv.
func (s *Service) Save(txns []model.Transaction) error {
	dir := filepath.Join(s.root, "ledger")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	f, err := os.Create(s.Path())
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// Path returns the transactions.csv location for this service.
func (s *Service) Path() string {
	return filepath.Join(s.root, "ledger", "transactions.csv")
}
