package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileUpdate_ApplyToReplacesOnlySetFields(t *testing.T) {
	u := User{
		Name:       "Ada",
		Favorites:  []string{"l-1"},
		SavedLooks: []SavedLook{{ID: "look-1"}},
	}
	favs := []string{"l-2", "b-1"}

	ProfileUpdate{Favorites: &favs}.ApplyTo(&u)

	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, []string{"l-2", "b-1"}, u.Favorites)
	assert.Equal(t, []SavedLook{{ID: "look-1"}}, u.SavedLooks)

	// the merged slice must not alias the update
	favs[0] = "changed"
	assert.Equal(t, "l-2", u.Favorites[0])
}

func TestProfileUpdate_EmptyCollectionClears(t *testing.T) {
	u := User{Favorites: []string{"l-1"}}
	empty := []string{}

	ProfileUpdate{Favorites: &empty}.ApplyTo(&u)

	assert.Empty(t, u.Favorites)
	assert.NotNil(t, u.Favorites)
}

func TestProfileUpdate_IsEmpty(t *testing.T) {
	assert.True(t, ProfileUpdate{}.IsEmpty())
	name := "x"
	assert.False(t, ProfileUpdate{Name: &name}.IsEmpty())
}

func TestParseCategoryAndFinish(t *testing.T) {
	assert.Equal(t, CategoryBlush, ParseCategory(" blush "))
	assert.Equal(t, CategoryLipstick, ParseCategory("lip gloss"))
	assert.Equal(t, FinishShimmer, ParseFinish("SHIMMER"))
	assert.Equal(t, FinishNatural, ParseFinish("metallic"))
}

func TestCollectionsUpdate_NormalizesNil(t *testing.T) {
	upd := CollectionsUpdate(User{})
	var u User
	upd.ApplyTo(&u)
	assert.NotNil(t, u.Favorites)
	assert.NotNil(t, u.CustomProducts)
	assert.NotNil(t, u.SavedLooks)
}
