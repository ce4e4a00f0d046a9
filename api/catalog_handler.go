package api

import (
	"net/http"
	"strings"

	"github.com/raushankrgupta/glow-studio/catalog"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/utils"
)

// CatalogHandler lists the products of a tab. Tabs that depend on the caller's collections
// (favorites, research) need a studio; category tabs do not.
func (a *API) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Catalog API]")

	tab := catalog.Tab(r.URL.Query().Get("tab"))
	if tab == "" {
		tab = catalog.Tab(models.CategoryLipstick)
	}
	utils.AddToLogMessage(&logMessageBuilder, "Tab: "+string(tab))

	var (
		favorites []string
		custom    []models.Product
	)
	if tab == catalog.TabFavorites || tab == catalog.TabResearch {
		st, status, err := a.studioFor(r)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, err.Error(), status)
			return
		}
		v := st.View()
		favorites, custom = v.Favorites, v.CustomProducts
	}

	products := catalog.Displayed(tab, favorites, custom)
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"tab":      tab,
		"tabs":     catalog.Tabs(),
		"products": products,
	})
}

// SpectrumHandler returns the palette for custom shades
func (a *API) SpectrumHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"colors": catalog.Spectrum(),
	})
}
