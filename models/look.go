package models

// LookProducts holds the products that were active when a look was saved
type LookProducts struct {
	Primary    *Product `bson:"primary" json:"primary"`
	Comparison *Product `bson:"comparison" json:"comparison"`
}

// SavedLook is a named snapshot persisted to the user's profile.
// Thumbnail always holds a storage key once persisted, never inline image bytes.
type SavedLook struct {
	ID        string       `bson:"id" json:"id"`
	Name      string       `bson:"name" json:"name"`
	Date      int64        `bson:"date" json:"date"` // unix milliseconds
	Thumbnail string       `bson:"thumbnail" json:"thumbnail"`
	Products  LookProducts `bson:"products" json:"products"`
	Intensity int          `bson:"intensity" json:"intensity"`
}

// EditSnapshot is one immutable point in the edit timeline.
// Images are data URIs or storage references.
type EditSnapshot struct {
	RenderedImage     string   `json:"rendered_image"`
	ComparisonImage   string   `json:"comparison_image,omitempty"`
	PrimaryProduct    *Product `json:"primary_product"`
	ComparisonProduct *Product `json:"comparison_product"`
}
