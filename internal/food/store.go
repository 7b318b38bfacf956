// ABOUTME: Local food fact store backed by an embedded Badger database.
// ABOUTME: Facts are keyed by lowercased name and stored as JSON.
package food

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitdiary/internal/models"
)

const factPrefix = "food:"

// Store is a local cache of per-100g food facts.
type Store struct {
	db *badger.DB
}

// OpenStore opens (or creates) a Badger store in dir.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create food store directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open food store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemoryStore opens a Store that lives only for the process.
func OpenInMemoryStore() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory food store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func factKey(name string) []byte {
	return []byte(factPrefix + normalize(name))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the fact stored under name, or ok=false.
func (s *Store) Get(name string) (*models.FoodNutritionFact, bool, error) {
	var fact models.FoodNutritionFact
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(factKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &fact)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get food %q: %w", name, err)
	}
	return &fact, true, nil
}

// Put stores a fact under its name, replacing any previous one.
func (s *Store) Put(fact *models.FoodNutritionFact) error {
	if normalize(fact.Name) == "" {
		return fmt.Errorf("put food: empty name")
	}
	data, err := json.Marshal(fact)
	if err != nil {
		return fmt.Errorf("marshal food: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(factKey(fact.Name), data)
	})
}

// Search returns up to limit facts whose name contains keyword, in key order.
// limit <= 0 means no limit.
func (s *Store) Search(keyword string, limit int) ([]models.FoodNutritionFact, error) {
	needle := normalize(keyword)
	var out []models.FoodNutritionFact

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(factPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			name := strings.TrimPrefix(string(it.Item().Key()), factPrefix)
			if !strings.Contains(name, needle) {
				continue
			}
			var fact models.FoodNutritionFact
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fact)
			}); err != nil {
				return err
			}
			out = append(out, fact)
			if limit > 0 && len(out) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	return out, nil
}
