package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/glow-studio/studio"
	"github.com/raushankrgupta/glow-studio/utils"
)

// maxBodyBytes bounds request bodies, which carry base64 images
const maxBodyBytes = 25 << 20

type imageRequest struct {
	Image string `json:"image"`
}

type faceRequest struct {
	Face string `json:"face"`
}

type applyRequest struct {
	ProductID string `json:"product_id"`
	Intensity int    `json:"intensity"`
}

type newPhotoRequest struct {
	Confirm bool `json:"confirm"`
}

type intensityRequest struct {
	Intensity int `json:"intensity"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, logMessageBuilder *strings.Builder, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		utils.RespondError(w, logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// validImage accepts only inline base64 images so the server never dereferences client URLs
func validImage(w http.ResponseWriter, logMessageBuilder *strings.Builder, image string) bool {
	if image == "" {
		utils.RespondError(w, logMessageBuilder, "image is required", http.StatusBadRequest)
		return false
	}
	if err := utils.ValidateImageRef(image); err != nil {
		utils.AddToLogMessage(logMessageBuilder, err.Error())
		utils.RespondError(w, logMessageBuilder, "image must be a base64 data URI", http.StatusBadRequest)
		return false
	}
	return true
}

func generativeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), generativeTimeout)
}

func (a *API) viewStudio(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	respondStudio(w, logMessageBuilder, st.ResolveImages(ctx), nil)
}

func (a *API) loadPhoto(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req imageRequest
	if !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}
	if !validImage(w, logMessageBuilder, req.Image) {
		return
	}

	ctx, cancel := generativeContext(r)
	defer cancel()
	v, err := st.LoadPhoto(ctx, req.Image)
	if err == nil {
		utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Detected faces: %d", max(len(v.Faces), 1)))
	}
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) selectFace(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req faceRequest
	if !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}
	v, err := st.SelectFace(req.Face)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) applyProduct(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req applyRequest
	if !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}
	utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Product: %s, intensity: %d", req.ProductID, req.Intensity))

	ctx, cancel := generativeContext(r)
	defer cancel()
	v, err := st.ApplyProduct(ctx, req.ProductID, req.Intensity)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) autoEnhance(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	ctx, cancel := generativeContext(r)
	defer cancel()
	v, err := st.AutoEnhance(ctx)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) undo(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	v, err := st.Undo()
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) redo(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	v, err := st.Redo()
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) newPhoto(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req newPhotoRequest
	if r.ContentLength != 0 && !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}
	v, err := st.NewPhoto(req.Confirm)
	respondStudio(w, logMessageBuilder, v, err)
}

func (a *API) toggleComparison(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	respondStudio(w, logMessageBuilder, st.ToggleComparison(), nil)
}

func (a *API) setIntensity(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req intensityRequest
	if !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}
	respondStudio(w, logMessageBuilder, st.SetIntensity(req.Intensity), nil)
}

func (a *API) scan(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder) {
	var req imageRequest
	if !decodeBody(w, r, logMessageBuilder, &req) {
		return
	}
	if !validImage(w, logMessageBuilder, req.Image) {
		return
	}

	ctx, cancel := generativeContext(r)
	defer cancel()
	v, err := st.Scan(ctx, req.Image)
	respondStudio(w, logMessageBuilder, v, err)
}
