package models

import "strings"

// Category is the makeup category a product belongs to
type Category string

const (
	CategoryLipstick   Category = "Lipstick"
	CategoryBlush      Category = "Blush"
	CategoryEyeshadow  Category = "Eyeshadow"
	CategoryEyeliner   Category = "Eyeliner"
	CategoryFoundation Category = "Foundation"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryLipstick,
	CategoryBlush,
	CategoryEyeshadow,
	CategoryEyeliner,
	CategoryFoundation,
}

// ParseCategory maps free text onto a Category. Unknown values fall back to Lipstick.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c
		}
	}
	return CategoryLipstick
}

// Finish is the surface finish of a product
type Finish string

const (
	FinishMatte   Finish = "Matte"
	FinishGlossy  Finish = "Glossy"
	FinishShimmer Finish = "Shimmer"
	FinishSatin   Finish = "Satin"
	FinishNatural Finish = "Natural"
	FinishDewy    Finish = "Dewy"
)

var finishes = []Finish{FinishMatte, FinishGlossy, FinishShimmer, FinishSatin, FinishNatural, FinishDewy}

// ParseFinish maps free text onto a Finish. Unknown values fall back to Natural.
func ParseFinish(s string) Finish {
	for _, f := range finishes {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f
		}
	}
	return FinishNatural
}

// Product represents a cosmetic item, either from the built-in catalog or scanned by the user
type Product struct {
	ID          string   `bson:"id" json:"id"`
	Brand       string   `bson:"brand" json:"brand"`
	Category    Category `bson:"category" json:"category"`
	Name        string   `bson:"name" json:"name"`
	Color       string   `bson:"color" json:"color"` // shade label, e.g. "Ruby Woo"
	Hex         string   `bson:"hex" json:"hex"`
	Finish      Finish   `bson:"finish" json:"finish"`
	Description string   `bson:"description" json:"description"`
	IsCustom    bool     `bson:"is_custom,omitempty" json:"is_custom,omitempty"`   // Set for user-scanned products
	ImagePath   string   `bson:"image_path,omitempty" json:"image_path,omitempty"` // Storage key of the scanned reference image
}

// GroundingLink is a web citation returned alongside a product scan
type GroundingLink struct {
	Title string `bson:"title" json:"title"`
	URI   string `bson:"uri" json:"uri"`
}

// BeautyAnalysis is the structured result of a skin tone consultation
type BeautyAnalysis struct {
	SkinToneDescription      string `json:"skinToneDescription"`
	SuggestedFoundationHex   string `json:"suggestedFoundationHex"`
	RecommendedLipstickShade string `json:"recommendedLipstickShade"`
	SuggestedLipstickHex     string `json:"suggestedLipstickHex"`
	Reasoning                string `json:"reasoning"`
}
