// Package studio drives one try-on session: the loaded portrait, its edit history, the
// products applied to it and the collections of the person using it.
package studio

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/raushankrgupta/glow-studio/catalog"
	"github.com/raushankrgupta/glow-studio/history"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/resolver"
	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/rs/zerolog"
)

const (
	MinIntensity     = 10
	MaxIntensity     = 100
	DefaultIntensity = 80
)

// Studio is safe for concurrent use. Calls to the model API run without the lock held;
// each one records the generation it started in and its result is dropped when the
// generation has moved on by the time it returns.
type Studio struct {
	owner string
	deps  Deps
	log   zerolog.Logger
	urls  *resolver.Cache

	mu             sync.Mutex
	original       string
	rendered       string
	comparison     string
	primary        *models.Product
	secondary      *models.Product
	target         string
	faces          []string
	comparisonMode bool
	intensity      int
	processing     bool
	scanning       bool
	errMsg         string
	links          []models.GroundingLink
	history        *history.Stack
	analysis       *models.BeautyAnalysis
	recommended    map[models.Category]string
	favorites      []string
	custom         []models.Product
	looks          []models.SavedLook
	generation     uint64
	session        *Session
	unsubscribe    func()
}

// New creates a studio for owner, seeded from the local mirror
func New(owner string, deps Deps) *Studio {
	s := &Studio{
		owner:     owner,
		deps:      deps,
		log:       deps.Log.With().Str("owner", owner).Logger(),
		intensity: DefaultIntensity,
		history:   history.New(),
	}
	var signer resolver.Signer
	if deps.Blobs != nil {
		signer = deps.Blobs
	}
	s.urls = resolver.NewCache(signer, s.log)

	c := models.Collections{}
	if deps.Local != nil {
		c = deps.Local.LoadCollections(owner)
	}
	s.setCollectionsLocked(c)
	return s
}

// Owner is the key the studio's local state is stored under
func (s *Studio) Owner() string {
	return s.owner
}

// View returns a snapshot of the studio
func (s *Studio) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// LoadPhoto starts a new edit timeline from image and detects the faces in it. Loading
// supersedes any request still in flight.
func (s *Studio) LoadPhoto(ctx context.Context, image string) (View, error) {
	if image == "" {
		return s.View(), ErrNoImage
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.original = image
	s.faces = nil
	s.target = ""
	s.analysis = nil
	s.recommended = nil
	s.errMsg = ""
	s.processing = true
	s.history.Start(models.EditSnapshot{RenderedImage: image})
	s.restoreLocked(s.history.Current())
	s.mu.Unlock()

	faces, err := s.deps.Vision.DetectFaces(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return s.viewLocked(), ErrStale
	}
	s.processing = false
	if err != nil {
		s.log.Error().Err(err).Msg("face detection failed")
		return s.failLocked(MsgFaceDetectionFailed, err)
	}

	if len(faces) > 1 {
		s.faces = faces
	} else {
		s.target = firstFace(faces)
	}
	return s.viewLocked(), nil
}

// SelectFace picks which of several detected faces later edits apply to
func (s *Studio) SelectFace(face string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.faces) == 0 {
		return s.viewLocked(), ErrNoFaceSelection
	}
	if !slices.Contains(s.faces, face) {
		return s.viewLocked(), ErrUnknownFace
	}
	s.target = face
	s.faces = nil
	s.errMsg = ""
	return s.viewLocked(), nil
}

// ApplyProduct renders a catalog product onto the current image. intensity 0 keeps the
// current setting; any other value becomes the new setting.
func (s *Studio) ApplyProduct(ctx context.Context, productID string, intensity int) (View, error) {
	s.mu.Lock()
	product, ok := catalog.Find(productID, s.custom)
	s.mu.Unlock()
	if !ok {
		return s.View(), ErrUnknownProduct
	}
	return s.applyProduct(ctx, product, intensity)
}

func (s *Studio) applyProduct(ctx context.Context, product models.Product, intensity int) (View, error) {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		defer s.mu.Unlock()
		return s.viewLocked(), err
	}
	if intensity != 0 {
		s.intensity = clampIntensity(intensity)
	}
	gen := s.generation
	base := s.baseImageLocked()
	applied := s.intensity
	target := s.target
	s.processing = true
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.deps.Vision.ApplyProduct(ctx, base, product, applied, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return s.viewLocked(), ErrStale
	}
	s.processing = false
	if err != nil {
		s.log.Error().Err(err).Str("product_id", product.ID).Msg("failed to apply product")
		return s.failLocked(MsgApplyFailed, err)
	}

	snap := models.EditSnapshot{
		RenderedImage:     result,
		ComparisonImage:   s.rendered,
		PrimaryProduct:    &product,
		ComparisonProduct: s.primary,
	}
	s.history.Append(snap)
	s.restoreLocked(snap)
	return s.viewLocked(), nil
}

// AutoEnhance asks for a beauty analysis of the original photo and applies the recommended
// foundation and lipstick as one edit.
func (s *Studio) AutoEnhance(ctx context.Context) (View, error) {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		defer s.mu.Unlock()
		return s.viewLocked(), err
	}
	gen := s.generation
	original := s.original
	s.processing = true
	s.errMsg = ""
	s.mu.Unlock()

	faces, err := s.deps.Vision.DetectFaces(ctx, original)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			return s.viewLocked(), ErrStale
		}
		s.processing = false
		s.log.Error().Err(err).Msg("auto-enhance face detection failed")
		return s.failLocked(MsgAutoEnhanceFailed, err)
	}
	target := firstFace(faces)

	analysis, err := s.deps.Vision.AnalyzeBeauty(ctx, original)
	var look string
	if err == nil {
		look, err = s.deps.Vision.ApplyFullLook(ctx, original, analysis)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return s.viewLocked(), ErrStale
	}
	s.processing = false
	s.target = target
	if err != nil {
		s.log.Error().Err(err).Msg("beauty analysis failed")
		return s.failLocked(MsgAnalysisFailed, err)
	}

	prev := s.rendered
	if prev == "" {
		prev = s.original
	}
	snap := models.EditSnapshot{RenderedImage: look, ComparisonImage: prev}
	s.history.Append(snap)
	s.restoreLocked(snap)

	s.analysis = &analysis
	s.recommended = make(map[models.Category]string)
	if p, ok := catalog.ClosestShade(models.CategoryFoundation, analysis.SuggestedFoundationHex, s.custom); ok {
		s.recommended[models.CategoryFoundation] = p.ID
	}
	if p, ok := catalog.ClosestShade(models.CategoryLipstick, analysis.SuggestedLipstickHex, s.custom); ok {
		s.recommended[models.CategoryLipstick] = p.ID
	}
	return s.viewLocked(), nil
}

// Undo steps back one edit. At the first edit it changes nothing.
func (s *Studio) Undo() (View, error) {
	return s.step((*history.Stack).Undo)
}

// Redo steps forward one edit. At the latest edit it changes nothing.
func (s *Studio) Redo() (View, error) {
	return s.step((*history.Stack).Redo)
}

func (s *Studio) step(move func(*history.Stack) (models.EditSnapshot, bool)) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == "" {
		return s.viewLocked(), ErrNoImage
	}
	if s.processing {
		return s.viewLocked(), ErrBusy
	}
	s.errMsg = ""
	if snap, moved := move(s.history); moved {
		s.restoreLocked(snap)
	}
	return s.viewLocked(), nil
}

// NewPhoto discards the photo and its history. It does nothing unless confirmed.
func (s *Studio) NewPhoto(confirm bool) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !confirm {
		return s.viewLocked(), ErrConfirmationRequired
	}

	s.generation++
	s.original = ""
	s.history.Reset()
	s.restoreLocked(models.EditSnapshot{})
	s.target = ""
	s.faces = nil
	s.comparisonMode = false
	s.processing = false
	s.errMsg = ""
	s.links = nil
	s.analysis = nil
	s.recommended = nil
	return s.viewLocked(), nil
}

// ToggleComparison switches between editing the latest render and editing the one before it
func (s *Studio) ToggleComparison() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparisonMode = !s.comparisonMode
	return s.viewLocked()
}

// SetIntensity sets the strength used by later edits, clamped to 10-100
func (s *Studio) SetIntensity(n int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intensity = clampIntensity(n)
	return s.viewLocked()
}

// readyLocked reports whether an edit may start
func (s *Studio) readyLocked() error {
	switch {
	case s.original == "":
		return ErrNoImage
	case s.processing || s.scanning:
		return ErrBusy
	case len(s.faces) > 0:
		return ErrFaceSelectionPending
	}
	return nil
}

// baseImageLocked is the image the next edit is painted on
func (s *Studio) baseImageLocked() string {
	if s.comparisonMode && s.comparison != "" {
		return s.comparison
	}
	if s.rendered != "" {
		return s.rendered
	}
	return s.original
}

func (s *Studio) restoreLocked(snap models.EditSnapshot) {
	s.rendered = snap.RenderedImage
	s.comparison = snap.ComparisonImage
	s.primary = snap.PrimaryProduct
	s.secondary = snap.ComparisonProduct
}

func (s *Studio) failLocked(msg string, err error) (View, error) {
	s.errMsg = msg
	return s.viewLocked(), &ActionError{Message: msg, Err: err}
}

func (s *Studio) viewLocked() View {
	v := View{
		Status:            s.statusLocked(),
		OriginalImage:     s.original,
		RenderedImage:     s.rendered,
		ComparisonImage:   s.comparison,
		PrimaryProduct:    s.primary,
		ComparisonProduct: s.secondary,
		TargetDescription: s.target,
		Faces:             slices.Clone(s.faces),
		ComparisonMode:    s.comparisonMode,
		Intensity:         s.intensity,
		Scanning:          s.scanning,
		Error:             s.errMsg,
		GroundingLinks:    append([]models.GroundingLink{}, s.links...),
		HistoryIndex:      s.history.Index(),
		HistoryLength:     s.history.Len(),
		CanUndo:           s.history.CanUndo(),
		CanRedo:           s.history.CanRedo(),
		Analysis:          s.analysis,
		Recommended:       maps.Clone(s.recommended),
		Favorites:         slices.Clone(s.favorites),
		CustomProducts:    slices.Clone(s.custom),
		SavedLooks:        slices.Clone(s.looks),
		ImageURLs:         s.urls.Snapshot(),
	}
	if s.session != nil {
		v.SignedIn = true
		v.UserName = s.session.Name
	}
	return v
}

func (s *Studio) statusLocked() Status {
	switch {
	case s.original == "":
		return StatusNoImage
	case s.processing:
		return StatusProcessing
	case len(s.faces) > 0:
		return StatusFaceSelection
	case s.errMsg != "":
		return StatusError
	}
	return StatusIdle
}

func firstFace(faces []string) string {
	if len(faces) > 0 && faces[0] != "" {
		return faces[0]
	}
	return utils.DefaultFace
}

func clampIntensity(n int) int {
	return min(max(n, MinIntensity), MaxIntensity)
}
