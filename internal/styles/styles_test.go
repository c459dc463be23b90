package styles

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantID string
	}{
		{"known style", "educational", "educational"},
		{"empty style", "", Default},
		{"unknown style", "heavy-metal", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, guide := Resolve(tt.id)
			if id != tt.wantID {
				t.Errorf("Expected id %q, got %q", tt.wantID, id)
			}
			if guide == "" {
				t.Error("Guide should never be empty")
			}
			if guide != guides[tt.wantID] {
				t.Errorf("Guide mismatch for %q", tt.id)
			}
		})
	}
}

func TestIDsSortedAndComplete(t *testing.T) {
	ids := IDs()
	if len(ids) != 5 {
		t.Fatalf("Expected 5 styles, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("IDs not sorted: %v", ids)
		}
	}
	for _, id := range ids {
		if !Known(id) {
			t.Errorf("IDs returned unknown style %q", id)
		}
	}
}
