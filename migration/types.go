package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// ChangeSet is one immutable step of schema evolution. Its statements run in
// order inside a single transaction.
type ChangeSet struct {
	Version     int64
	Description string
	Statements  []string
}

// Checksum fingerprints the statements so that edits to a published change-set are detected
func (c *ChangeSet) Checksum() string {
	h := sha256.New()
	for _, stmt := range c.Statements {
		h.Write([]byte(strings.TrimSpace(stmt)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// VersionTable records the applied change-sets
const VersionTable = "schema_migrations"

// MigrationRecord is a row of the version table
type MigrationRecord struct {
	Version     int64     `gorm:"column:version;primaryKey;autoIncrement:false"`
	Description string    `gorm:"column:description;not null"`
	Checksum    string    `gorm:"column:checksum;not null"`
	AppliedAt   time.Time `gorm:"column:applied_at;not null"`
}

func (MigrationRecord) TableName() string { return VersionTable }

// Ledger is the ascending, gap-tolerant list of change-sets
type Ledger struct {
	changeSets []*ChangeSet
}

// NewLedger orders the change-sets and rejects malformed ones
func NewLedger(changeSets ...*ChangeSet) (*Ledger, error) {
	sorted := slices.Clone(changeSets)
	slices.SortFunc(sorted, func(a, b *ChangeSet) int {
		switch {
		case a.Version < b.Version:
			return -1
		case a.Version > b.Version:
			return 1
		}
		return 0
	})

	for i, cs := range sorted {
		if cs.Version <= 0 {
			return nil, fmt.Errorf("change-set %q: version must be positive, got %d", cs.Description, cs.Version)
		}
		if i > 0 && sorted[i-1].Version == cs.Version {
			return nil, fmt.Errorf("duplicate change-set version %d", cs.Version)
		}
		if cs.Description == "" {
			return nil, fmt.Errorf("change-set %d has no description", cs.Version)
		}
		if len(cs.Statements) == 0 {
			return nil, fmt.Errorf("change-set %d has no statements", cs.Version)
		}
	}
	return &Ledger{changeSets: sorted}, nil
}

// ChangeSets returns all change-sets in ascending version order
func (l *Ledger) ChangeSets() []*ChangeSet {
	return slices.Clone(l.changeSets)
}

// Latest is the highest version of the ledger, 0 when empty
func (l *Ledger) Latest() int64 {
	if len(l.changeSets) == 0 {
		return 0
	}
	return l.changeSets[len(l.changeSets)-1].Version
}

// Pending returns the change-sets newer than current, ascending
func (l *Ledger) Pending(current int64) []*ChangeSet {
	var out []*ChangeSet
	for _, cs := range l.changeSets {
		if cs.Version > current {
			out = append(out, cs)
		}
	}
	return out
}

// Get returns the change-set with the given version
func (l *Ledger) Get(version int64) (*ChangeSet, bool) {
	for _, cs := range l.changeSets {
		if cs.Version == version {
			return cs, true
		}
	}
	return nil, false
}

var (
	globalChangeSets = make([]*ChangeSet, 0)
	registryMutex    sync.RWMutex
)

func RegisterChangeSet(changeSet *ChangeSet) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalChangeSets = append(globalChangeSets, changeSet)
}

func GetRegisteredChangeSets() []*ChangeSet {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	changeSets := make([]*ChangeSet, len(globalChangeSets))
	copy(changeSets, globalChangeSets)
	return changeSets
}

// RegisteredLedger builds a ledger from every registered change-set
func RegisteredLedger() (*Ledger, error) {
	return NewLedger(GetRegisteredChangeSets()...)
}

func ResetChangeSets() {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalChangeSets = make([]*ChangeSet, 0)
}

// ModelRegistry - users must implement this
type ModelRegistry interface {
	GetModels() map[string]interface{}
}

// Global registry - users set this in their main.go
var GlobalModelRegistry ModelRegistry

// Validate that registry is provided
func ValidateRegistry() error {
	if GlobalModelRegistry == nil {
		return fmt.Errorf("no model registry provided. Please implement migration.ModelRegistry and set it in your main.go")
	}
	return nil
}
