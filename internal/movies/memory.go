package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/loomworks/loomai/internal/domain"
)

const memoryKeyPrefix = "memory:"

// MemoryStore persists past recommendation sessions in BadgerDB and
// recalls the ones relevant to a new context.
type MemoryStore struct {
	db *badger.DB
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenMemoryStore opens the store at path, or fully in memory when
// inMemory is set (used in tests).
func OpenMemoryStore(path string, inMemory bool) (*MemoryStore, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{db: db}, nil
}

func (s *MemoryStore) Close() error {
	return s.db.Close()
}

// Record appends a session to memory. The timestamp doubles as the key
// so entries iterate in chronological order.
func (s *MemoryStore) Record(_ context.Context, item domain.MemoryItem) error {
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%020d", memoryKeyPrefix, item.Timestamp.UnixNano())
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(key), payload)
	})
}

// Recall returns the stored sessions most relevant to the given
// context, plus aggregate pattern insights over the whole memory.
func (s *MemoryStore) Recall(_ context.Context, currentContext string, limit int) (*domain.MemoryOutput, error) {
	if limit <= 0 {
		limit = 5
	}

	var items []domain.MemoryItem
	err := s.db.View(func(tx *badger.Txn) error {
		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(memoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var item domain.MemoryItem
				if err := json.Unmarshal(val, &item); err != nil {
					return nil // skip unreadable entries
				}
				items = append(items, item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	relevant := rankByOverlap(items, currentContext)
	if len(relevant) > limit {
		relevant = relevant[:limit]
	}

	return &domain.MemoryOutput{
		RelevantMemories: relevant,
		PatternInsights:  patternInsights(items),
	}, nil
}

// rankByOverlap orders memories by word overlap between the stored
// context and the current one, dropping entries with no overlap.
func rankByOverlap(items []domain.MemoryItem, currentContext string) []domain.MemoryItem {
	queryWords := wordSet(currentContext)
	if len(queryWords) == 0 {
		return []domain.MemoryItem{}
	}

	type scored struct {
		item    domain.MemoryItem
		overlap int
	}

	var ranked []scored
	for _, item := range items {
		overlap := 0
		for w := range wordSet(item.Context) {
			if _, ok := queryWords[w]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			ranked = append(ranked, scored{item: item, overlap: overlap})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overlap > ranked[j].overlap
	})

	result := make([]domain.MemoryItem, len(ranked))
	for i, r := range ranked {
		result[i] = r.item
	}
	return result
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

// patternInsights aggregates success signals across all sessions. The
// consistency and similarity figures are coarse placeholders until
// enough history accumulates to compute them properly.
func patternInsights(items []domain.MemoryItem) map[string]float64 {
	if len(items) == 0 {
		return map[string]float64{}
	}

	var rated, successful float64
	for _, item := range items {
		if item.SuccessRating == nil {
			continue
		}
		rated++
		if *item.SuccessRating >= 0.5 {
			successful++
		}
	}

	successRate := 0.0
	if rated > 0 {
		successRate = successful / rated
	}

	return map[string]float64{
		"success_rate":       successRate,
		"action_consistency": 0.7,
		"context_similarity": 0.8,
	}
}
