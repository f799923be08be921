package sentences

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Ledger tracks input files that have already been turned into
// documents. It only ever grows.
type Ledger interface {
	Contains(path string) bool
	Add(path string) error
}

// FileLedger persists processed paths one per line, append-only.
type FileLedger struct {
	path string

	mu      sync.Mutex
	entries map[string]struct{}
}

// OpenFileLedger loads (or creates on first Add) the ledger at path.
func OpenFileLedger(path string) (*FileLedger, error) {
	ledger := &FileLedger{
		path:    path,
		entries: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ledger, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ledger.entries[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return ledger, nil
}

func (l *FileLedger) Contains(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[path]
	return ok
}

// Add appends path to the ledger file. Paths already present are left
// alone so a clean run never records the same path twice.
func (l *FileLedger) Add(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[path]; ok {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(path + "\n"); err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	l.entries[path] = struct{}{}
	return nil
}

// MemoryLedger is an in-memory Ledger for tests.
type MemoryLedger struct {
	mu      sync.Mutex
	entries map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]struct{})}
}

func (l *MemoryLedger) Contains(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[path]
	return ok
}

func (l *MemoryLedger) Add(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[path] = struct{}{}
	return nil
}
