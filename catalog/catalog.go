// Package catalog serves the built-in product list combined with products a user scanned.
package catalog

import (
	"math"
	"slices"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/utils"
)

// Tab selects which slice of the catalog a client shows
type Tab string

const (
	TabFavorites Tab = "Favorites"
	TabResearch  Tab = "Research"
	TabMyLooks   Tab = "My Looks"
)

// Tabs lists every tab in display order
func Tabs() []Tab {
	tabs := []Tab{TabResearch, TabFavorites, TabMyLooks}
	for _, c := range models.Categories {
		tabs = append(tabs, Tab(c))
	}
	return tabs
}

// BuiltIn returns a copy of the built-in products
func BuiltIn() []models.Product {
	return slices.Clone(builtIn)
}

// All returns built-in products followed by custom ones
func All(custom []models.Product) []models.Product {
	out := make([]models.Product, 0, len(builtIn)+len(custom))
	out = append(out, builtIn...)
	return append(out, custom...)
}

// Find looks a product up by id in the combined catalog
func Find(id string, custom []models.Product) (models.Product, bool) {
	for _, p := range builtIn {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range custom {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Displayed returns the products shown under tab. Unknown tabs show nothing.
func Displayed(tab Tab, favorites []string, custom []models.Product) []models.Product {
	switch tab {
	case TabFavorites:
		var out []models.Product
		for _, p := range All(custom) {
			if slices.Contains(favorites, p.ID) {
				out = append(out, p)
			}
		}
		return out
	case TabResearch:
		return slices.Clone(custom)
	case TabMyLooks:
		return nil
	}

	var out []models.Product
	for _, p := range builtIn {
		if Tab(p.Category) == tab {
			out = append(out, p)
		}
	}
	return out
}

// ClosestShade returns the product in category whose hex is nearest to hex
func ClosestShade(category models.Category, hex string, custom []models.Product) (models.Product, bool) {
	var (
		best  models.Product
		found bool
		dist  = math.Inf(1)
	)
	for _, p := range All(custom) {
		if p.Category != category {
			continue
		}
		if d := utils.ColorDistance(hex, p.Hex); d < dist {
			best, dist, found = p, d, true
		}
	}
	return best, found
}

// Spectrum returns the custom shade palette
func Spectrum() []string {
	return slices.Clone(spectrum)
}
