package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{ID: "Return3.1", Question: "What is your return policy?", Answer: "You have 30 days to return items for a full refund.", Category: "Returns"},
		{ID: "Shipping2.4", Question: "How long does shipping take?", Answer: "Standard shipping takes 5-7 business days.", Category: "Shipping"},
		{ID: "Payment1.2", Question: "What payment methods do you accept?", Answer: "We accept credit cards and PayPal.", Category: "Payments"},
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	data := `[{"id":"Return3.1","question":"What is your return policy?","answer":"30 days.","category":"Returns"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if !s.Has("Return3.1") {
		t.Error("Has(Return3.1) = false")
	}
	entry, ok := s.ByID("Return3.1")
	if !ok || entry.Answer != "30 days." {
		t.Errorf("ByID = %+v, %v", entry, ok)
	}
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "missing.json"))
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if s.Has("Return3.1") {
		t.Error("empty store should not validate any citation")
	}
}

func TestLoadMalformedFileYieldsEmptyStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	if err := os.WriteFile(path, []byte(`[{"id":"A1.1","question":"q","answer":"a","category":"c"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if !s.Has("A1.1") || s.Has("B2.2") {
		t.Fatal("unexpected initial state")
	}

	if err := os.WriteFile(path, []byte(`[{"id":"B2.2","question":"q","answer":"a","category":"c"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if s.Has("A1.1") || !s.Has("B2.2") {
		t.Error("reload did not swap the snapshot")
	}
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	if err := os.WriteFile(path, []byte(`[{"id":"A1.1","question":"q","answer":"a","category":"c"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if err := os.WriteFile(path, []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("Reload of malformed file should error")
	}

	if !s.Has("A1.1") {
		t.Error("failed reload must keep the previous snapshot")
	}
}

func TestFindRelevant(t *testing.T) {
	s := NewStore(sampleEntries())

	t.Run("matches by category and question", func(t *testing.T) {
		results := s.FindRelevant("what is your return policy", 3)
		if len(results) == 0 {
			t.Fatal("no results")
		}
		if results[0].ID != "Return3.1" {
			t.Errorf("top result = %s, want Return3.1", results[0].ID)
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		results := s.FindRelevant("what", 1)
		if len(results) > 1 {
			t.Errorf("len = %d, want <= 1", len(results))
		}
	})

	t.Run("short tokens ignored", func(t *testing.T) {
		results := s.FindRelevant("is to we do", 3)
		if len(results) != 0 {
			t.Errorf("len = %d, want 0 (all tokens under 3 chars)", len(results))
		}
	})

	t.Run("no match yields empty", func(t *testing.T) {
		results := s.FindRelevant("zebra quantum dirigible", 3)
		if len(results) != 0 {
			t.Errorf("len = %d, want 0", len(results))
		}
	})

	t.Run("category hit outranks answer hit", func(t *testing.T) {
		results := s.FindRelevant("shipping", 3)
		if len(results) == 0 || results[0].ID != "Shipping2.4" {
			t.Errorf("results = %+v", results)
		}
	})
}

func TestGetStats(t *testing.T) {
	s := NewStore(sampleEntries())

	stats := s.GetStats()
	if stats.TotalPolicies != 3 {
		t.Errorf("TotalPolicies = %d, want 3", stats.TotalPolicies)
	}
	if stats.PoliciesByCategory["Returns"] != 1 || stats.PoliciesByCategory["Shipping"] != 1 {
		t.Errorf("PoliciesByCategory = %v", stats.PoliciesByCategory)
	}
	if len(stats.AllPolicyIDs) != 3 || stats.AllPolicyIDs[0] != "Return3.1" {
		t.Errorf("AllPolicyIDs = %v", stats.AllPolicyIDs)
	}
}
