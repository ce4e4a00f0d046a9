package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user and the collections owned by their profile
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password,omitempty" json:"-"` // Password is not returned in JSON
	Favorites      []string           `bson:"favorites" json:"favorites"`
	CustomProducts []Product          `bson:"custom_products" json:"custom_products"`
	SavedLooks     []SavedLook        `bson:"saved_looks" json:"saved_looks"`
	ResetCode      string             `bson:"reset_code,omitempty" json:"-"` // bcrypt hash of the pending password reset code
	ResetExpires   time.Time          `bson:"reset_expires,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize replaces absent collections with empty ones
func (u *User) Normalize() {
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	if u.CustomProducts == nil {
		u.CustomProducts = []Product{}
	}
	if u.SavedLooks == nil {
		u.SavedLooks = []SavedLook{}
	}
}

// ProfileUpdate is a partial update of a profile. A nil field is left untouched,
// a non-nil field replaces the stored value wholesale.
type ProfileUpdate struct {
	Name           *string
	Favorites      *[]string
	CustomProducts *[]Product
	SavedLooks     *[]SavedLook
}

// IsEmpty reports whether the update changes nothing
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Favorites == nil && p.CustomProducts == nil && p.SavedLooks == nil
}

// ApplyTo merges the update into u field by field
func (p ProfileUpdate) ApplyTo(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Favorites != nil {
		u.Favorites = append([]string{}, (*p.Favorites)...)
	}
	if p.CustomProducts != nil {
		u.CustomProducts = append([]Product{}, (*p.CustomProducts)...)
	}
	if p.SavedLooks != nil {
		u.SavedLooks = append([]SavedLook{}, (*p.SavedLooks)...)
	}
}

// CollectionsUpdate builds an update replacing all three owned collections from u
func CollectionsUpdate(u User) ProfileUpdate {
	u.Normalize()
	return ProfileUpdate{
		Favorites:      &u.Favorites,
		CustomProducts: &u.CustomProducts,
		SavedLooks:     &u.SavedLooks,
	}
}

// Collections are the three lists owned by a profile and mirrored on the device
type Collections struct {
	Favorites      []string    `json:"favorites"`
	CustomProducts []Product   `json:"custom_products"`
	SavedLooks     []SavedLook `json:"saved_looks"`
}

// Collections returns u's owned lists, never nil
func (u User) Collections() Collections {
	u.Normalize()
	return Collections{
		Favorites:      u.Favorites,
		CustomProducts: u.CustomProducts,
		SavedLooks:     u.SavedLooks,
	}
}
