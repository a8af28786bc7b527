package stats

import (
	"reflect"
	"testing"
)

// TestCreateOrder tests the ordering guarantees.
func TestCreateOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		present   []string
		preferred []string
		want      []string
	}{
		{
			name:      "curated fields first then unknown fields",
			present:   []string{"b", "a", "z"},
			preferred: []string{"a", "b"},
			want:      []string{"a", "b", "z"},
		},
		{
			name:      "reserved pseudo-entry included even when absent",
			present:   []string{"name"},
			preferred: []string{"sep!", "name"},
			want:      []string{"sep!", "name"},
		},
		{
			name:      "preferred entries absent from present are skipped",
			present:   []string{"size"},
			preferred: []string{"name", "size", "chunks"},
			want:      []string{"size"},
		},
		{
			name:      "empty preferred keeps original order",
			present:   []string{"x", "y"},
			preferred: nil,
			want:      []string{"x", "y"},
		},
		{
			name:      "empty present keeps pseudo-entries only",
			present:   nil,
			preferred: []string{"header!", "name"},
			want:      []string{"header!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CreateOrder(tt.present, tt.preferred)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CreateOrder(%v, %v) = %v, want %v", tt.present, tt.preferred, got, tt.want)
			}
		})
	}
}

// TestIsReserved tests pseudo-entry detection.
func TestIsReserved(t *testing.T) {
	t.Parallel()

	if !IsReserved("sep!") {
		t.Error("expected sep! to be reserved")
	}
	if IsReserved("name") {
		t.Error("expected name to not be reserved")
	}
}
