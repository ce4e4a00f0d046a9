package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raushankrgupta/glow-studio/catalog"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/studio"
	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	photo  = "data:image/png;base64,cGhvdG8="
	render = "data:image/png;base64,cmVuZGVy"
)

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) studio.View {
	t.Helper()
	var v studio.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestStudioRequiresIdentity(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/studio", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), DeviceHeader)
}

func TestStudioRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/studio", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudioFlow(t *testing.T) {
	ts := newTestServer(t)
	lipstick, ok := catalog.Find("l-1", nil)
	require.True(t, ok)

	ts.vision.On("DetectFaces", mock.Anything, photo).Return([]string{"The person"}, nil).Once()
	ts.vision.On("ApplyProduct", mock.Anything, photo, lipstick, 60, "The person").Return(render, nil).Once()

	rec := ts.do(http.MethodGet, "/studio", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, studio.StatusNoImage, decodeView(t, rec).Status)

	rec = ts.do(http.MethodPost, "/studio/photo", "phone", fmt.Sprintf(`{"image":%q}`, photo))
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	assert.Equal(t, studio.StatusIdle, v.Status)
	assert.Equal(t, "The person", v.TargetDescription)
	assert.Equal(t, 0, v.HistoryIndex)

	rec = ts.do(http.MethodPost, "/studio/apply", "phone", `{"product_id":"l-1","intensity":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Equal(t, render, v.RenderedImage)
	assert.Equal(t, photo, v.ComparisonImage)
	assert.Equal(t, 60, v.Intensity)
	assert.Equal(t, 1, v.HistoryIndex)
	assert.Equal(t, 2, v.HistoryLength)

	rec = ts.do(http.MethodPost, "/studio/undo", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Equal(t, photo, v.RenderedImage)
	assert.True(t, v.CanRedo)

	rec = ts.do(http.MethodPost, "/studio/redo", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render, decodeView(t, rec).RenderedImage)

	// other devices have their own studio
	rec = ts.do(http.MethodGet, "/studio", "tablet", "")
	assert.Equal(t, studio.StatusNoImage, decodeView(t, rec).Status)

	ts.vision.AssertExpectations(t)
}

func TestImagesMustBeInline(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/studio/photo", "/studio/scan"} {
		for _, image := range []string{
			"http://169.254.169.254/latest/meta-data/",
			"https://example.com/portrait.jpg",
			"data:text/plain;base64,aGk=",
		} {
			rec := ts.do(http.MethodPost, path, "phone", fmt.Sprintf(`{"image":%q}`, image))
			assert.Equal(t, http.StatusBadRequest, rec.Code, path+" "+image)
		}
	}
	ts.vision.AssertNotCalled(t, "DetectFaces", mock.Anything, mock.Anything)
	ts.vision.AssertNotCalled(t, "IdentifyProduct", mock.Anything, mock.Anything)
}

func TestNewPhotoNeedsConfirmation(t *testing.T) {
	ts := newTestServer(t)
	ts.vision.On("DetectFaces", mock.Anything, photo).Return([]string{"The person"}, nil)

	ts.do(http.MethodPost, "/studio/photo", "phone", fmt.Sprintf(`{"image":%q}`, photo))

	rec := ts.do(http.MethodPost, "/studio/new-photo", "phone", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	var body struct {
		Error string      `json:"error"`
		View  studio.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, photo, body.View.OriginalImage)

	rec = ts.do(http.MethodPost, "/studio/new-photo", "phone", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	assert.Equal(t, studio.StatusNoImage, v.Status)
	assert.Equal(t, -1, v.HistoryIndex)
}

func TestApplyFailureReportsMessage(t *testing.T) {
	ts := newTestServer(t)
	ts.vision.On("DetectFaces", mock.Anything, photo).Return([]string{"The person"}, nil)
	ts.vision.On("ApplyProduct", mock.Anything, photo, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model unavailable"))

	ts.do(http.MethodPost, "/studio/photo", "phone", fmt.Sprintf(`{"image":%q}`, photo))
	rec := ts.do(http.MethodPost, "/studio/apply", "phone", `{"product_id":"l-1"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), studio.MsgApplyFailed)
}

func TestSaveLookRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/looks", "phone", `{"name":"Date night"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), studio.MsgLoginRequired)
}

func TestFavorites(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/favorites/l-3", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"l-3"}, decodeView(t, rec).Favorites)

	rec = ts.do(http.MethodGet, "/catalog?tab=Favorites", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "l-3", body.Products[0].ID)

	rec = ts.do(http.MethodPost, "/favorites/nope", "phone", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/catalog", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tab      string           `json:"tab"`
		Tabs     []string         `json:"tabs"`
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(models.CategoryLipstick), body.Tab)
	assert.Equal(t, []string{"Research", "Favorites", "My Looks"}, body.Tabs[:3])
	require.NotEmpty(t, body.Products)
	for _, p := range body.Products {
		assert.Equal(t, models.CategoryLipstick, p.Category)
	}

	// collection tabs need to know whose collections
	rec = ts.do(http.MethodGet, "/catalog?tab=Research", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/catalog/spectrum", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var spectrum struct {
		Colors []string `json:"colors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spectrum))
	assert.Len(t, spectrum.Colors, len(catalog.Spectrum()))
}

func TestTutorial(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/tutorial", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"seen":false}`, rec.Body.String())

	rec = ts.do(http.MethodPost, "/tutorial/seen", "phone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ts.tutorial[studio.DeviceOwner("phone")])

	rec = ts.do(http.MethodGet, "/tutorial", "phone", "")
	assert.JSONEq(t, `{"seen":true}`, rec.Body.String())
}

func TestGenerativeRoutesAreRateLimited(t *testing.T) {
	ts := newTestServer(t)
	ts.api.RateLimit = 1
	ts.mux = http.NewServeMux()
	ts.api.Routes(ts.mux)
	ts.vision.On("DetectFaces", mock.Anything, photo).Return([]string{"The person"}, nil)

	body := fmt.Sprintf(`{"image":%q}`, photo)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/studio/photo", "phone", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(http.MethodPost, "/studio/photo", "phone", body).Code)

	// limits are per identity, and only on model-backed routes
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/studio/photo", "tablet", body).Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/studio", "phone", "").Code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"quota", &studio.ActionError{Message: studio.MsgApplyFailed, Err: fmt.Errorf("apply: %w", utils.ErrQuotaExceeded)}, http.StatusTooManyRequests, "Quota exceeded. Please try again later."},
		{"action", &studio.ActionError{Message: studio.MsgScanFailed, Err: errors.New("boom")}, http.StatusBadGateway, studio.MsgScanFailed},
		{"auth", studio.ErrAuthRequired, http.StatusUnauthorized, studio.MsgLoginRequired},
		{"busy", studio.ErrBusy, http.StatusConflict, studio.ErrBusy.Error()},
		{"stale", studio.ErrStale, http.StatusConflict, studio.ErrStale.Error()},
		{"face pending", studio.ErrFaceSelectionPending, http.StatusConflict, studio.ErrFaceSelectionPending.Error()},
		{"confirm", studio.ErrConfirmationRequired, http.StatusPreconditionRequired, studio.ErrConfirmationRequired.Error()},
		{"unknown product", studio.ErrUnknownProduct, http.StatusNotFound, studio.ErrUnknownProduct.Error()},
		{"unknown look", studio.ErrUnknownLook, http.StatusNotFound, studio.ErrUnknownLook.Error()},
		{"no image", studio.ErrNoImage, http.StatusBadRequest, studio.ErrNoImage.Error()},
		{"blank name", studio.ErrInvalidName, http.StatusBadRequest, studio.ErrInvalidName.Error()},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}
