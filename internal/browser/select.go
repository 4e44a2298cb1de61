package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/soundcloud-digger/internal/model"
)

// AllCategories selects every category.
const AllCategories = "all"

// ErrUnknownCategory is returned by Select for a category name outside the
// closed set.
var ErrUnknownCategory = errors.New("unknown category")

// Item is one summary entry queued for opening.
type Item struct {
	Category model.Category
	Entry    model.Entry
}

// Select flattens the entries of category (or of every category when it is
// AllCategories) in category order, drops the first skip items and keeps at
// most limit of the rest. A negative skip counts as zero and a negative
// limit means no limit.
func Select(s *model.Summary, category string, skip, limit int) ([]Item, error) {
	categories, err := resolveCategories(category)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, c := range categories {
		for _, e := range s.Entries(c) {
			items = append(items, Item{Category: c, Entry: e})
		}
	}

	skip = max(skip, 0)
	if skip >= len(items) {
		return nil, nil
	}
	items = items[skip:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// CategoryChoices returns the category names accepted by Select.
func CategoryChoices() []string {
	choices := make([]string, 0, model.NumCategories+1)
	for _, c := range model.Categories() {
		choices = append(choices, c.String())
	}
	return append(choices, AllCategories)
}

func resolveCategories(name string) ([]model.Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == AllCategories {
		return model.Categories(), nil
	}
	c, ok := model.LookupCategory(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownCategory, name, strings.Join(CategoryChoices(), ", "))
	}
	return []model.Category{c}, nil
}
