package assistant

import (
	"reflect"
	"testing"
)

type fakePolicySet map[string]bool

func (f fakePolicySet) Has(id string) bool { return f[id] }

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "You have 30 days to return items [Return3.1].", []string{"Return3.1"}},
		{"multiple", "See [Return3.1] and [Shipping2.4] for details.", []string{"Return3.1", "Shipping2.4"}},
		{"duplicate deduped", "[Return3.1] applies here, see [Return3.1].", []string{"Return3.1"}},
		{"none", "No citations here.", []string{}},
		{"malformed skipped", "See [Return3] and [3.1] and [Return-3.1].", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidateCitations(t *testing.T) {
	kb := fakePolicySet{"Return3.1": true, "Shipping2.4": true}

	t.Run("all valid", func(t *testing.T) {
		v := ValidateCitations("Per [Return3.1] and [Shipping2.4].", kb)
		if !v.IsValid {
			t.Fatalf("IsValid = false, want true: %s", v.Message)
		}
		if v.TotalCitations != 2 || len(v.ValidCitations) != 2 {
			t.Errorf("got %d total, %d valid", v.TotalCitations, len(v.ValidCitations))
		}
	})

	t.Run("invalid present", func(t *testing.T) {
		v := ValidateCitations("Per [Return3.1] and [Fake9.9].", kb)
		if v.IsValid {
			t.Fatal("IsValid = true, want false")
		}
		if !reflect.DeepEqual(v.InvalidCitations, []string{"Fake9.9"}) {
			t.Errorf("InvalidCitations = %v", v.InvalidCitations)
		}
		if !reflect.DeepEqual(v.ValidCitations, []string{"Return3.1"}) {
			t.Errorf("ValidCitations = %v", v.ValidCitations)
		}
	})

	t.Run("no citations is valid", func(t *testing.T) {
		v := ValidateCitations("Just a plain answer.", kb)
		if !v.IsValid {
			t.Error("IsValid = false, want true")
		}
		if v.TotalCitations != 0 {
			t.Errorf("TotalCitations = %d, want 0", v.TotalCitations)
		}
	})
}

func TestRemoveInvalidCitations(t *testing.T) {
	kb := fakePolicySet{"Return3.1": true}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"strips invalid", "Returns take 30 days [Fake9.9] per policy.", "Returns take 30 days per policy."},
		{"keeps valid", "Returns take 30 days [Return3.1] per policy.", "Returns take 30 days [Return3.1] per policy."},
		{"mixed", "See [Return3.1] and [Fake9.9] here.", "See [Return3.1] and here."},
		{"trailing", "Thirty days [Fake9.9]", "Thirty days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveInvalidCitations(tt.text, kb)
			if got != tt.want {
				t.Errorf("RemoveInvalidCitations(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
