package studio

import "errors"

var (
	ErrNoImage              = errors.New("no photo loaded")
	ErrBusy                 = errors.New("another request is still processing")
	ErrFaceSelectionPending = errors.New("choose a face first")
	ErrNoFaceSelection      = errors.New("no face selection is pending")
	ErrUnknownFace          = errors.New("face is not one of the detected faces")
	ErrAuthRequired         = errors.New("you must be logged in to save looks")
	ErrConfirmationRequired = errors.New("starting over discards unsaved changes; confirm to continue")
	ErrStale                = errors.New("result arrived after the studio moved on")
	ErrUnknownProduct       = errors.New("product not found")
	ErrUnknownLook          = errors.New("look not found")
	ErrInvalidName          = errors.New("name must not be blank")

	errNoBlobStore = errors.New("blob storage is not configured")
)

// Messages shown to the user when an action fails
const (
	MsgFaceDetectionFailed = "Face detection failed."
	MsgApplyFailed         = "Failed to apply product."
	MsgScanFailed          = "Product scan failed. Ensure clear lighting."
	MsgLoginRequired       = "You must be logged in to save looks."
	MsgSaveFailed          = "Could not save look. Check your connection."
	MsgAnalysisFailed      = "Could not complete beauty analysis. You can still apply products manually."
	MsgAutoEnhanceFailed   = "Auto-enhance failed."
)

// ActionError is returned when an external call behind an action fails. Message is the
// text the studio now reports to the user.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
