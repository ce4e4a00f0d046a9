package utils

import (
	"math"
	"regexp"
	"strconv"
)

var hexColorPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// RGB is a color as three 0-255 channels
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HexToRGB parses a 6-digit hex color with optional leading '#'.
// Malformed input yields {0,0,0}.
func HexToRGB(hex string) RGB {
	m := hexColorPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}
	}
	r, _ := strconv.ParseUint(m[1], 16, 8)
	g, _ := strconv.ParseUint(m[2], 16, 8)
	b, _ := strconv.ParseUint(m[3], 16, 8)
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// ColorDistance returns the Euclidean distance between two hex colors in RGB space
func ColorDistance(hexA, hexB string) float64 {
	a, b := HexToRGB(hexA), HexToRGB(hexB)
	dr := float64(a.R - b.R)
	dg := float64(a.G - b.G)
	db := float64(a.B - b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
