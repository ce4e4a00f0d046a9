package studio

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/glow-studio/catalog"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/resolver"
	"github.com/raushankrgupta/glow-studio/utils"
)

// Scan identifies the product in image and adds it to the custom products. When signed in,
// a thumbnail of the capture is uploaded so the product keeps a reference image. If the photo
// was replaced meanwhile the product is still kept but not selected, and a failure is
// reported as ErrStale without touching the new photo's state.
func (s *Studio) Scan(ctx context.Context, image string) (View, error) {
	if image == "" {
		return s.View(), ErrNoImage
	}

	s.mu.Lock()
	if s.processing || s.scanning {
		defer s.mu.Unlock()
		return s.viewLocked(), ErrBusy
	}
	gen := s.generation
	sess := s.session
	s.scanning = true
	s.errMsg = ""
	s.mu.Unlock()

	product, links, err := s.deps.Vision.IdentifyProduct(ctx, image)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.scanning = false
		s.log.Error().Err(err).Msg("product scan failed")
		if gen != s.generation {
			return s.viewLocked(), ErrStale
		}
		return s.failLocked(MsgScanFailed, err)
	}
	product.IsCustom = true

	if sess != nil && s.deps.Blobs != nil {
		res, err := s.deps.Blobs.UploadImage(ctx, sess.UserID, utils.CreateThumbnail(image), product.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("product_id", product.ID).Msg("failed to upload scan image")
		} else {
			product.ImagePath = res.Path
			s.urls.Put(product.ID, res.SignedURL)
		}
	}

	s.mu.Lock()
	s.scanning = false
	s.custom = append([]models.Product{product}, s.custom...)
	if gen == s.generation {
		s.links = links
		s.primary = &product
	}
	c, sess := s.collectionsLocked(), s.session
	v := s.viewLocked()
	s.mu.Unlock()

	s.persist(ctx, sess, c, models.ProfileUpdate{CustomProducts: &c.CustomProducts})
	return v, nil
}

// SaveLook stores the current render under name. Looks belong to an account, so a session
// is required.
func (s *Studio) SaveLook(ctx context.Context, name string) (View, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	if s.session == nil {
		defer s.mu.Unlock()
		s.errMsg = MsgLoginRequired
		return s.viewLocked(), ErrAuthRequired
	}
	if name == "" {
		defer s.mu.Unlock()
		return s.viewLocked(), ErrInvalidName
	}
	if s.rendered == "" {
		defer s.mu.Unlock()
		return s.viewLocked(), ErrNoImage
	}
	userID := s.session.UserID
	rendered := s.rendered
	look := models.SavedLook{
		ID:   "look-" + uuid.NewString(),
		Name: name,
		Products: models.LookProducts{
			Primary:    s.primary,
			Comparison: s.secondary,
		},
		Intensity: s.intensity,
	}
	s.errMsg = ""
	s.mu.Unlock()

	if s.deps.Blobs == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.failLocked(MsgSaveFailed, errNoBlobStore)
	}

	res, err := s.deps.Blobs.UploadImage(ctx, userID, utils.CreateThumbnail(rendered), look.ID)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.log.Error().Err(err).Str("look_id", look.ID).Msg("failed to upload look thumbnail")
		return s.failLocked(MsgSaveFailed, err)
	}
	look.Thumbnail = res.Path
	look.Date = time.Now().UnixMilli()
	s.urls.Put(look.ID, res.SignedURL)

	s.mu.Lock()
	s.looks = append([]models.SavedLook{look}, s.looks...)
	c, sess := s.collectionsLocked(), s.session
	v := s.viewLocked()
	s.mu.Unlock()

	s.persist(ctx, sess, c, models.ProfileUpdate{SavedLooks: &c.SavedLooks})
	return v, nil
}

// DeleteLook removes a saved look
func (s *Studio) DeleteLook(ctx context.Context, id string) (View, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.looks, func(l models.SavedLook) bool { return l.ID == id })
	if i < 0 {
		defer s.mu.Unlock()
		return s.viewLocked(), ErrUnknownLook
	}
	s.looks = slices.Delete(slices.Clone(s.looks), i, i+1)
	c, sess := s.collectionsLocked(), s.session
	v := s.viewLocked()
	s.mu.Unlock()

	s.persist(ctx, sess, c, models.ProfileUpdate{SavedLooks: &c.SavedLooks})
	return v, nil
}

// ApplySavedLook re-applies a look's primary product at the intensity it was saved with.
// A look without a primary product changes nothing.
func (s *Studio) ApplySavedLook(ctx context.Context, id string) (View, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.looks, func(l models.SavedLook) bool { return l.ID == id })
	if i < 0 {
		defer s.mu.Unlock()
		return s.viewLocked(), ErrUnknownLook
	}
	look := s.looks[i]
	if look.Products.Primary == nil {
		defer s.mu.Unlock()
		return s.viewLocked(), nil
	}
	s.mu.Unlock()

	return s.applyProduct(ctx, *look.Products.Primary, look.Intensity)
}

// ToggleFavorite adds or removes a product from the favorites
func (s *Studio) ToggleFavorite(ctx context.Context, productID string) (View, error) {
	s.mu.Lock()
	if _, ok := catalog.Find(productID, s.custom); !ok {
		defer s.mu.Unlock()
		return s.viewLocked(), ErrUnknownProduct
	}
	if i := slices.Index(s.favorites, productID); i >= 0 {
		s.favorites = slices.Delete(slices.Clone(s.favorites), i, i+1)
	} else {
		s.favorites = append(slices.Clone(s.favorites), productID)
	}
	c, sess := s.collectionsLocked(), s.session
	v := s.viewLocked()
	s.mu.Unlock()

	s.persist(ctx, sess, c, models.ProfileUpdate{Favorites: &c.Favorites})
	return v, nil
}

// ResolveImages makes sure every saved look thumbnail and scanned product image has a
// displayable URL
func (s *Studio) ResolveImages(ctx context.Context) View {
	s.mu.Lock()
	refs := make([]resolver.Ref, 0, len(s.looks)+len(s.custom))
	for _, l := range s.looks {
		refs = append(refs, resolver.Ref{ID: l.ID, Path: l.Thumbnail})
	}
	for _, p := range s.custom {
		if p.ImagePath != "" {
			refs = append(refs, resolver.Ref{ID: p.ID, Path: p.ImagePath})
		}
	}
	s.mu.Unlock()

	if len(refs) > 0 {
		if _, updated := s.urls.Resolve(ctx, refs); updated {
			s.log.Debug().Int("refs", len(refs)).Msg("resolved new image urls")
		}
	}
	return s.View()
}

// persist mirrors c locally and sends upd to the remote profile. Failures are logged; the
// in-memory state stays authoritative.
func (s *Studio) persist(ctx context.Context, sess *Session, c models.Collections, upd models.ProfileUpdate) {
	if s.deps.Local != nil {
		if err := s.deps.Local.SaveCollections(s.owner, c); err != nil {
			s.log.Warn().Err(err).Msg("failed to write local collections")
		}
	}
	if sess != nil && s.deps.Profiles != nil {
		if err := s.deps.Profiles.UpdateProfile(ctx, sess.UserID, upd); err != nil {
			s.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("failed to sync profile")
		}
	}
}

func (s *Studio) collectionsLocked() models.Collections {
	return models.Collections{
		Favorites:      slices.Clone(s.favorites),
		CustomProducts: slices.Clone(s.custom),
		SavedLooks:     slices.Clone(s.looks),
	}
}

func (s *Studio) setCollectionsLocked(c models.Collections) {
	u := models.User{Favorites: c.Favorites, CustomProducts: c.CustomProducts, SavedLooks: c.SavedLooks}
	c = u.Collections()
	s.favorites = c.Favorites
	s.custom = c.CustomProducts
	s.looks = c.SavedLooks
}
