package studio

import "github.com/raushankrgupta/glow-studio/models"

// Status is the state of the studio's edit flow
type Status string

const (
	StatusNoImage       Status = "no_image"
	StatusIdle          Status = "idle"
	StatusProcessing    Status = "processing"
	StatusFaceSelection Status = "face_selection"
	StatusError         Status = "error"
)

// View is what a client renders
type View struct {
	Status            Status                     `json:"status"`
	OriginalImage     string                     `json:"original_image,omitempty"`
	RenderedImage     string                     `json:"rendered_image,omitempty"`
	ComparisonImage   string                     `json:"comparison_image,omitempty"`
	PrimaryProduct    *models.Product            `json:"primary_product,omitempty"`
	ComparisonProduct *models.Product            `json:"comparison_product,omitempty"`
	TargetDescription string                     `json:"target_description,omitempty"`
	Faces             []string                   `json:"faces,omitempty"`
	ComparisonMode    bool                       `json:"comparison_mode"`
	Intensity         int                        `json:"intensity"`
	Scanning          bool                       `json:"scanning"`
	Error             string                     `json:"error,omitempty"`
	GroundingLinks    []models.GroundingLink     `json:"grounding_links"`
	HistoryIndex      int                        `json:"history_index"`
	HistoryLength     int                        `json:"history_length"`
	CanUndo           bool                       `json:"can_undo"`
	CanRedo           bool                       `json:"can_redo"`
	Analysis          *models.BeautyAnalysis     `json:"analysis,omitempty"`
	Recommended       map[models.Category]string `json:"recommended,omitempty"`
	Favorites         []string                   `json:"favorites"`
	CustomProducts    []models.Product           `json:"custom_products"`
	SavedLooks        []models.SavedLook         `json:"saved_looks"`
	ImageURLs         map[string]string          `json:"image_urls"`
	SignedIn          bool                       `json:"signed_in"`
	UserName          string                     `json:"user_name,omitempty"`
}
