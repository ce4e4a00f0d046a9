package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/glow-studio/studio"
	"github.com/raushankrgupta/glow-studio/utils"
)

type saveLookRequest struct {
	Name string `json:"name"`
}

func (a *API) listLooks(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	v := st.ResolveImages(ctx)

	utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Looks: %d", len(v.SavedLooks)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"looks":      v.SavedLooks,
		"image_urls": v.ImageURLs,
	})
}

func (a *API) saveLook(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req saveLookRequest
	if !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()
	v, err := st.SaveLook(ctx, req.Name)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) deleteLook(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	id := r.PathValue("id")
	utils.AddToLogMessage(logMessageBuilder, "Look: "+id)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	v, err := st.DeleteLook(ctx, id)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) applyLook(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	id := r.PathValue("id")
	utils.AddToLogMessage(logMessageBuilder, "Look: "+id)

	ctx, cancel := generativeContext(r)
	defer cancel()
	v, err := st.ApplySavedLook(ctx, id)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) toggleFavorite(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	id := r.PathValue("id")
	utils.AddToLogMessage(logMessageBuilder, "Product: "+id)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	v, err := st.ToggleFavorite(ctx, id)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) tutorialStatus(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	seen := a.Tutorial != nil && a.Tutorial.TutorialSeen(st.Owner())
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"seen": seen})
}

func (a *API) tutorialSeen(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	if a.Tutorial != nil {
		if err := a.Tutorial.MarkTutorialSeen(st.Owner()); err != nil {
			utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Failed to store tutorial flag: %v", err))
		}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"seen": true})
}
