package donor

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalID(t *testing.T) {
	id := uuid.MustParse("0c9dc51e-3a10-4cc3-8c27-50f1f16fcc43")

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "7", "7"},
		{"padded string", " 7 ", "7"},
		{"int", 7, "7"},
		{"float from json", float64(7), "7"},
		{"json number", json.Number("7"), "7"},
		{"uuid", id, id.String()},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalID(tc.value); got != tc.want {
				t.Fatalf("CanonicalID(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}
