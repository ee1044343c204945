// Package app contains the recipe resolution service for the crafting context.
package app

import (
	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/logger"
)

// Resolver answers craftability questions against a market snapshot and
// decomposes craftable items into purchasable base materials.
type Resolver struct {
	log logger.LoggerInterface
}

// NewResolver creates a resolver.
func NewResolver(log logger.LoggerInterface) *Resolver {
	return &Resolver{log: log}
}

// IsCraftable reports whether the item has a recipe.
func (r *Resolver) IsCraftable(snap *marketdomain.Snapshot, itemID string) bool {
	_, ok := snap.RecipeFor(itemID)
	return ok
}

// FlattenRecipe returns the item's recipe as ingredient id → total
// quantity, with repeated slots summed. Fails with NOT_CRAFTABLE when the
// item has no recipe.
func (r *Resolver) FlattenRecipe(snap *marketdomain.Snapshot, itemID string) (map[string]int64, error) {
	recipe, ok := snap.RecipeFor(itemID)
	if !ok {
		return nil, apperror.New(apperror.CodeNotCraftable, apperror.WithContext(itemID))
	}
	return recipe.Ingredients(), nil
}

// IsObtainable reports whether the item can be acquired from the market:
// either it is listed directly, or it is craftable and every flattened
// ingredient is itself obtainable. ignoreSelfListing skips the direct
// listing check for the root item only, which lets a craft flip ask "can I
// build this from parts" about an item that is also listed.
func (r *Resolver) IsObtainable(snap *marketdomain.Snapshot, itemID string, ignoreSelfListing bool) bool {
	return r.obtainable(snap, itemID, ignoreSelfListing, map[string]bool{})
}

func (r *Resolver) obtainable(snap *marketdomain.Snapshot, itemID string, ignoreSelfListing bool, onPath map[string]bool) bool {
	if !ignoreSelfListing && snap.IsListed(itemID) {
		return true
	}

	// A repeated id on the current recipe path can never bottom out.
	if onPath[itemID] {
		return false
	}

	recipe, ok := snap.RecipeFor(itemID)
	if !ok {
		return false
	}

	onPath[itemID] = true
	defer delete(onPath, itemID)

	for ingredientID := range recipe.Ingredients() {
		if !r.obtainable(snap, ingredientID, false, onPath) {
			return false
		}
	}
	return true
}

// DecomposeToBaseMaterials reduces a craftable item to the market-listed
// materials needed to craft one unit, as material id → quantity.
//
// Listed ingredients are taken as-is; unlisted but craftable ingredients
// are decomposed recursively, with the sub-materials scaled by the
// ingredient quantity. Recipes that output more than one unit therefore
// overstate the required materials; downstream profit figures inherit
// that bias. An ingredient that is neither listed nor craftable fails
// with MATERIAL_NOT_OBTAINABLE; a repeated id on the recursion path fails
// with CYCLIC_RECIPE.
func (r *Resolver) DecomposeToBaseMaterials(snap *marketdomain.Snapshot, itemID string) (map[string]int64, error) {
	return r.decompose(snap, itemID, map[string]bool{})
}

func (r *Resolver) decompose(snap *marketdomain.Snapshot, itemID string, onPath map[string]bool) (map[string]int64, error) {
	if onPath[itemID] {
		return nil, apperror.New(apperror.CodeCyclicRecipe, apperror.WithContext(itemID))
	}

	ingredients, err := r.FlattenRecipe(snap, itemID)
	if err != nil {
		return nil, err
	}

	onPath[itemID] = true
	defer delete(onPath, itemID)

	materials := make(map[string]int64)
	for ingredientID, qty := range ingredients {
		switch {
		case snap.IsListed(ingredientID):
			materials[ingredientID] += qty

		case r.IsCraftable(snap, ingredientID):
			sub, err := r.decompose(snap, ingredientID, onPath)
			if err != nil {
				return nil, err
			}
			for materialID, subQty := range sub {
				materials[materialID] += subQty * qty
			}

		default:
			return nil, apperror.New(apperror.CodeMaterialNotObtainable, apperror.WithContext(ingredientID))
		}
	}
	return materials, nil
}
