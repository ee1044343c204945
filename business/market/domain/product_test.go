package domain

import (
	"testing"
)

func TestRecipeIngredients(t *testing.T) {
	tests := []struct {
		name  string
		slots map[string]string
		want  map[string]int64
	}{
		{
			name:  "empty_recipe",
			slots: map[string]string{},
			want:  map[string]int64{},
		},
		{
			name: "single_ingredient",
			slots: map[string]string{
				"A1": "ENCHANTED_COAL:32",
			},
			want: map[string]int64{"ENCHANTED_COAL": 32},
		},
		{
			name: "repeated_slots_summed",
			slots: map[string]string{
				"A1": "IRON_INGOT:16",
				"A2": "IRON_INGOT:16",
				"B1": "COAL:8",
			},
			want: map[string]int64{"IRON_INGOT": 32, "COAL": 8},
		},
		{
			name: "empty_slots_skipped",
			slots: map[string]string{
				"A1": "OAK_LOG:4",
				"A2": "",
				"A3": "",
			},
			want: map[string]int64{"OAK_LOG": 4},
		},
		{
			name: "missing_count_defaults_to_one",
			slots: map[string]string{
				"A1": "STICK",
			},
			want: map[string]int64{"STICK": 1},
		},
		{
			name: "id_with_dash_and_count",
			slots: map[string]string{
				"A1": "INK_SACK-4:3",
			},
			want: map[string]int64{"INK_SACK-4": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recipe{Slots: tt.slots}.Ingredients()

			if len(got) != len(tt.want) {
				t.Fatalf("got %d ingredients, want %d: %v", len(got), len(tt.want), got)
			}
			for id, qty := range tt.want {
				if got[id] != qty {
					t.Errorf("ingredient %s: got %d, want %d", id, got[id], qty)
				}
			}
		})
	}
}
