package app

import (
	"io"
	"testing"
	"time"

	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/logger"
)

func snapshotWith(listed []string, recipes map[string]map[string]string) *marketdomain.Snapshot {
	products := make(map[string]marketdomain.Product, len(listed))
	for _, id := range listed {
		products[id] = marketdomain.Product{ItemID: id}
	}
	table := make(map[string]marketdomain.Recipe, len(recipes))
	for id, slots := range recipes {
		table[id] = marketdomain.Recipe{Slots: slots}
	}
	return marketdomain.NewSnapshot(products, nil, table, time.Now())
}

func newTestResolver() *Resolver {
	return NewResolver(logger.New(io.Discard, logger.LevelError, "test", nil))
}

func TestFlattenRecipe(t *testing.T) {
	snap := snapshotWith(nil, map[string]map[string]string{
		"ENCHANTED_GOLD_BLOCK": {
			"A1": "ENCHANTED_GOLD:32",
			"A2": "ENCHANTED_GOLD:32",
			"A3": "ENCHANTED_GOLD:32",
			"B1": "ENCHANTED_GOLD:32",
			"B2": "ENCHANTED_GOLD:32",
		},
	})
	r := newTestResolver()

	got, err := r.FlattenRecipe(snap, "ENCHANTED_GOLD_BLOCK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["ENCHANTED_GOLD"] != 160 {
		t.Errorf("got %d, want 160", got["ENCHANTED_GOLD"])
	}

	_, err = r.FlattenRecipe(snap, "DIRT")
	if !apperror.IsCode(err, apperror.CodeNotCraftable) {
		t.Errorf("got %v, want NOT_CRAFTABLE", err)
	}
}

func TestIsObtainable(t *testing.T) {
	snap := snapshotWith(
		[]string{"WHEAT", "SUGAR"},
		map[string]map[string]string{
			"CAKE":     {"A1": "WHEAT:3", "A2": "SUGAR:2"},
			"MYSTERY":  {"A1": "UNLISTED_THING:1"},
			"SELF_REF": {"A1": "SELF_REF:1"},
		},
	)
	r := newTestResolver()

	tests := []struct {
		name       string
		itemID     string
		ignoreSelf bool
		want       bool
	}{
		{"listed_item", "WHEAT", false, true},
		{"listed_item_ignoring_self", "WHEAT", true, false},
		{"craftable_from_listed", "CAKE", false, true},
		{"craftable_from_listed_ignoring_self", "CAKE", true, true},
		{"ingredient_unobtainable", "MYSTERY", false, false},
		{"unknown_item", "NOTHING", false, false},
		{"self_referential_recipe", "SELF_REF", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsObtainable(snap, tt.itemID, tt.ignoreSelf); got != tt.want {
				t.Errorf("IsObtainable(%s, %v) = %v, want %v", tt.itemID, tt.ignoreSelf, got, tt.want)
			}
		})
	}
}

func TestDecomposeToBaseMaterials(t *testing.T) {
	r := newTestResolver()

	t.Run("listed_ingredients_taken_directly", func(t *testing.T) {
		snap := snapshotWith(
			[]string{"IRON_INGOT", "COAL"},
			map[string]map[string]string{
				"FURNACE_KIT": {"A1": "IRON_INGOT:8", "A2": "COAL:4"},
			},
		)

		got, err := r.DecomposeToBaseMaterials(snap, "FURNACE_KIT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["IRON_INGOT"] != 8 || got["COAL"] != 4 {
			t.Errorf("got %v, want IRON_INGOT:8 COAL:4", got)
		}
	})

	t.Run("nested_decomposition_scales_by_ingredient_qty", func(t *testing.T) {
		// MID is unlisted but craftable from 3 BASE; the kit needs 2 MID,
		// so the kit bottoms out at 6 BASE.
		snap := snapshotWith(
			[]string{"BASE"},
			map[string]map[string]string{
				"KIT": {"A1": "MID:2"},
				"MID": {"A1": "BASE:3"},
			},
		)

		got, err := r.DecomposeToBaseMaterials(snap, "KIT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["BASE"] != 6 {
			t.Errorf("got BASE:%d, want 6", got["BASE"])
		}
	})

	t.Run("material_not_obtainable", func(t *testing.T) {
		snap := snapshotWith(nil, map[string]map[string]string{
			"KIT": {"A1": "VOID_SHARD:1"},
		})

		_, err := r.DecomposeToBaseMaterials(snap, "KIT")
		if !apperror.IsCode(err, apperror.CodeMaterialNotObtainable) {
			t.Errorf("got %v, want MATERIAL_NOT_OBTAINABLE", err)
		}
	})

	t.Run("no_recipe", func(t *testing.T) {
		snap := snapshotWith([]string{"DIRT"}, nil)

		_, err := r.DecomposeToBaseMaterials(snap, "DIRT")
		if !apperror.IsCode(err, apperror.CodeNotCraftable) {
			t.Errorf("got %v, want NOT_CRAFTABLE", err)
		}
	})

	t.Run("cyclic_recipe_detected", func(t *testing.T) {
		// A and B craft each other and neither is listed.
		snap := snapshotWith(nil, map[string]map[string]string{
			"A": {"A1": "B:1"},
			"B": {"A1": "A:1"},
		})

		_, err := r.DecomposeToBaseMaterials(snap, "A")
		if !apperror.IsCode(err, apperror.CodeCyclicRecipe) {
			t.Errorf("got %v, want CYCLIC_RECIPE", err)
		}
	})

	t.Run("repeated_ingredient_off_path_is_not_a_cycle", func(t *testing.T) {
		// BASE appears under both branches; that is a diamond, not a cycle.
		snap := snapshotWith(
			[]string{"BASE"},
			map[string]map[string]string{
				"KIT":  {"A1": "MID1:1", "A2": "MID2:1"},
				"MID1": {"A1": "BASE:2"},
				"MID2": {"A1": "BASE:3"},
			},
		)

		got, err := r.DecomposeToBaseMaterials(snap, "KIT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["BASE"] != 5 {
			t.Errorf("got BASE:%d, want 5", got["BASE"])
		}
	})
}
