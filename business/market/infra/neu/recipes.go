// Package neu loads crafting recipes from a directory of NEU item JSON files.
package neu

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/business/market/infra/feedcache"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/logger"
)

const recipesFeed = "recipes"

// itemFile is the subset of a NEU item file we care about.
type itemFile struct {
	InternalName string            `json:"internalname"`
	Recipe       map[string]string `json:"recipe"`
}

// Loader reads every *.json file under a directory and extracts the
// recipe table, consolidating it into the disk cache so later runs skip
// the directory walk.
type Loader struct {
	dir   string
	cache *feedcache.Store
	log   logger.LoggerInterface
}

// NewLoader creates a recipe loader rooted at dir.
func NewLoader(dir string, cache *feedcache.Store, log logger.LoggerInterface) *Loader {
	return &Loader{dir: dir, cache: cache, log: log}
}

// LoadRecipes returns the recipe table keyed by item id. Items without a
// recipe entry are simply absent from the table. An unset directory yields
// an empty table: nothing is craftable, flips still work.
func (l *Loader) LoadRecipes(ctx context.Context) (map[string]domain.Recipe, error) {
	if l.dir == "" {
		l.log.Debug(ctx, "no recipe directory configured, recipes disabled")
		return map[string]domain.Recipe{}, nil
	}

	var cached map[string]map[string]string

	hit, err := l.cache.Load(ctx, recipesFeed, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return toRecipes(cached), nil
	}

	slots, err := l.walk(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Save(ctx, recipesFeed, slots); err != nil {
		l.log.Warn(ctx, "failed to cache recipe table", "error", err)
	}

	return toRecipes(slots), nil
}

func (l *Loader) walk(ctx context.Context) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, apperror.New(apperror.CodeRecipeLoadFailed,
			apperror.WithContext(l.dir),
			apperror.WithCause(err),
		)
	}

	slots := make(map[string]map[string]string)
	skipped := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return nil, apperror.New(apperror.CodeRecipeLoadFailed,
				apperror.WithContext(entry.Name()),
				apperror.WithCause(err),
			)
		}

		var item itemFile
		if err := json.Unmarshal(data, &item); err != nil {
			// Individual malformed files are skipped, not fatal.
			skipped++
			continue
		}

		if item.InternalName == "" || len(item.Recipe) == 0 {
			continue
		}
		slots[item.InternalName] = item.Recipe
	}

	if skipped > 0 {
		l.log.Warn(ctx, "skipped malformed recipe files", "count", skipped)
	}
	l.log.Debug(ctx, "recipe directory loaded", "dir", l.dir, "recipes", len(slots))

	return slots, nil
}

func toRecipes(slots map[string]map[string]string) map[string]domain.Recipe {
	recipes := make(map[string]domain.Recipe, len(slots))
	for id, s := range slots {
		recipes[id] = domain.Recipe{Slots: s}
	}
	return recipes
}
