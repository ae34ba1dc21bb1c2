// Package knowledge holds the static policy knowledge base used for
// retrieval-augmented prompting and citation validation.
package knowledge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Entry is one policy question/answer record. Entry IDs double as citation
// tokens and must match the [A-Za-z]+N.N grammar (e.g. "Return3.1").
type Entry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// Store holds an immutable snapshot of the knowledge base. Reload swaps the
// snapshot atomically, so readers never see a partially loaded base.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries []Entry
	byID    map[string]Entry
}

// Load reads the knowledge base from a JSON file. A read or parse failure is
// logged and yields an empty store rather than an error: every citation then
// validates as invalid, but the assistant keeps running.
func Load(path string) *Store {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		log.Printf("⚠️ [KNOWLEDGE] Failed to load knowledge base from %s: %v", path, err)
	}
	return s
}

// NewStore builds a store directly from entries, without a backing file.
// Reload is a no-op for such a store.
func NewStore(entries []Entry) *Store {
	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &Store{entries: entries, byID: byID}
}

// Reload re-reads the backing file and swaps the snapshot on success.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	s.mu.Lock()
	s.entries = entries
	s.byID = byID
	s.mu.Unlock()

	log.Printf("✅ [KNOWLEDGE] Loaded %d policies from knowledge base", len(entries))
	return nil
}

// Len returns the number of entries in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Has reports whether a policy ID exists in the knowledge base.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// ByID returns the entry for a policy ID.
func (s *Store) ByID(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	return e, ok
}

// IDs returns all policy IDs in file order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// Stats summarizes the knowledge base for diagnostics.
type Stats struct {
	TotalPolicies      int            `json:"totalPolicies"`
	PoliciesByCategory map[string]int `json:"policiesByCategory"`
	AllPolicyIDs       []string       `json:"allPolicyIds"`
}

// GetStats returns counts per category plus all IDs.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[string]int)
	ids := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		byCategory[e.Category]++
		ids = append(ids, e.ID)
	}

	return Stats{
		TotalPolicies:      len(s.entries),
		PoliciesByCategory: byCategory,
		AllPolicyIDs:       ids,
	}
}

// FindRelevant scores each entry against the whitespace-tokenized query and
// returns the top entries with score > 0, best first. Tokens shorter than
// three characters are skipped; a token hit counts +2 in the question, +1 in
// the answer and +3 in the category (case-insensitive substring containment).
func (s *Store) FindRelevant(query string, limit int) []Entry {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()

	words := strings.Fields(strings.ToLower(query))

	type scored struct {
		entry Entry
		score int
		order int
	}

	var matched []scored
	for i, e := range entries {
		question := strings.ToLower(e.Question)
		answer := strings.ToLower(e.Answer)
		category := strings.ToLower(e.Category)

		score := 0
		for _, word := range words {
			if len(word) < 3 {
				continue
			}
			if strings.Contains(question, word) {
				score += 2
			}
			if strings.Contains(answer, word) {
				score += 1
			}
			if strings.Contains(category, word) {
				score += 3
			}
		}

		if score > 0 {
			matched = append(matched, scored{entry: e, score: score, order: i})
		}
	}

	// Stable by file order on equal score
	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].score > matched[b].score
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]Entry, len(matched))
	for i, m := range matched {
		result[i] = m.entry
	}
	return result
}
