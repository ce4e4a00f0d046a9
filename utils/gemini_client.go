package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/raushankrgupta/glow-studio/config"
	"github.com/raushankrgupta/glow-studio/models"
	"google.golang.org/api/option"
)

// ErrQuotaExceeded is returned when the generative API rejects a call for quota reasons
var ErrQuotaExceeded = errors.New("generative API quota exceeded")

const (
	detectFacesPrompt = "Analyze this image. Are there people? If yes, identify distinct faces. Return a JSON object with a 'faces' array containing a brief, unique physical description for each person found (e.g. 'Woman in red on the left', 'Man with glasses'). If only one person, return an array with one generic string 'The person'."
	beautyPrompt      = "Act as a world-class celebrity makeup artist. Analyze the person's skin tone, undertones, and features. Recommend a specific foundation shade (hex) and a complementary lipstick color family (provide a representative hex code). Provide a professional reasoning. Return JSON."
	scanPrompt        = "Identify this makeup product precisely. Search for real swatches and people wearing this exact shade. Determine the most accurate Hex code and finish. Return JSON."

	// DefaultFace is used when a photo has people but the model could not tell them apart
	DefaultFace = "The person"

	scannedDescription = "AI Researched Product"
)

// GeminiClient wraps the generative models used by the studio
type GeminiClient struct {
	client      *genai.Client
	visionModel string
	imageModel  string
	scanner     *productScanner
}

// NewGeminiClient opens a client against the configured API key and models
func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	scanner, err := newProductScanner(ctx, NewLinkTitler())
	if err != nil {
		client.Close()
		return nil, err
	}

	return &GeminiClient{
		client:      client,
		visionModel: config.VisionModel,
		imageModel:  config.ImageModel,
		scanner:     scanner,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// DetectFaces returns one description per distinct face. A photo is never reported as
// having zero faces: an empty list from the model becomes DefaultFace.
func (g *GeminiClient) DetectFaces(ctx context.Context, imageRef string) ([]string, error) {
	model := g.jsonModel(g.visionModel, &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"faces": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	})

	var out struct {
		Faces []string `json:"faces"`
	}
	if err := g.generateJSON(ctx, model, imageRef, detectFacesPrompt, &out); err != nil {
		return nil, err
	}

	faces := make([]string, 0, len(out.Faces))
	for _, f := range out.Faces {
		if f = strings.TrimSpace(f); f != "" {
			faces = append(faces, f)
		}
	}
	if len(faces) == 0 {
		faces = []string{DefaultFace}
	}
	return faces, nil
}

// AnalyzeBeauty asks for skin tone, foundation and lipstick recommendations
func (g *GeminiClient) AnalyzeBeauty(ctx context.Context, imageRef string) (models.BeautyAnalysis, error) {
	fields := []string{"skinToneDescription", "suggestedFoundationHex", "recommendedLipstickShade", "suggestedLipstickHex", "reasoning"}
	model := g.jsonModel(g.visionModel, stringObjectSchema(fields))

	var analysis models.BeautyAnalysis
	if err := g.generateJSON(ctx, model, imageRef, beautyPrompt, &analysis); err != nil {
		return models.BeautyAnalysis{}, err
	}
	if analysis.SuggestedFoundationHex == "" || analysis.SuggestedLipstickHex == "" {
		return models.BeautyAnalysis{}, fmt.Errorf("analysis response is missing recommended shades")
	}
	return analysis, nil
}

// IdentifyProduct recognises a makeup product from a photo, searching the web for swatches,
// and returns it with the pages the answer was grounded on.
func (g *GeminiClient) IdentifyProduct(ctx context.Context, imageRef string) (models.Product, []models.GroundingLink, error) {
	return g.scanner.identify(ctx, imageRef)
}

// ApplyProduct renders product onto the photo at the given intensity (10-100). When target
// is non-empty only that face is edited.
func (g *GeminiClient) ApplyProduct(ctx context.Context, imageRef string, product models.Product, intensity int, target string) (string, error) {
	return g.generateImage(ctx, imageRef, applyProductPrompt(product, intensity, target))
}

// ApplyFullLook renders the recommended foundation and lipstick in a single pass
func (g *GeminiClient) ApplyFullLook(ctx context.Context, imageRef string, analysis models.BeautyAnalysis) (string, error) {
	prompt := fmt.Sprintf(`Task: Apply full makeup look.
Foundation: %s
Lipstick: %s

CRITICAL INSTRUCTIONS:
1. PRESERVE the exact identity and facial structure of the person in the image.
2. Do not change hair, background, or eye color.
3. Apply the makeup naturally, preserving skin pores and texture.

Return the image only. No text.`, analysis.SuggestedFoundationHex, analysis.SuggestedLipstickHex)

	return g.generateImage(ctx, imageRef, prompt)
}

func applyProductPrompt(product models.Product, intensity int, target string) string {
	targetLine := ""
	if target != "" {
		targetLine = fmt.Sprintf("TARGET FACE: Apply makeup ONLY to: %q. Do NOT touch other faces.", target)
	}

	return fmt.Sprintf(`Task: Apply makeup.
Product: %s %s (%s, %s)
Category: %s
Finish: %s
Intensity: %d%%
%s

CRITICAL INSTRUCTIONS:
1. DO NOT change the person's face, features, identity, expression, or skin texture.
2. DO NOT change the background, hair, or lighting.
3. This is an ADDITIVE process. Keep all previous makeup (e.g. lipstick, eyeliner) intact.
4. Only apply the new %s to the specific area with %d%% opacity.
5. The output must look exactly like the input image, but with the specific makeup product applied realistically.
6. IMPORTANT: If the person's eyes are open, KEEP THEM OPEN. Do not close the eyes to show eyeshadow. Apply it to the visible eyelid area only.

Return the image only. No text.`,
		product.Brand, product.Name, product.Color, product.Hex,
		product.Category, product.Finish, intensity, targetLine,
		product.Category, intensity)
}

func (g *GeminiClient) jsonModel(name string, schema *genai.Schema) *genai.GenerativeModel {
	model := g.client.GenerativeModel(name)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	return model
}

func stringObjectSchema(fields []string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: fields}
}

func (g *GeminiClient) generateJSON(ctx context.Context, model *genai.GenerativeModel, imageRef, prompt string, out any) error {
	img, err := imagePart(imageRef)
	if err != nil {
		return err
	}

	resp, err := model.GenerateContent(ctx, img, genai.Text(prompt))
	if err != nil {
		return wrapGenerateError(err)
	}

	text := responseText(resp)
	if text == "" {
		return fmt.Errorf("no content generated")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse model response: %v", err)
	}
	return nil
}

func (g *GeminiClient) generateImage(ctx context.Context, imageRef, prompt string) (string, error) {
	img, err := imagePart(imageRef)
	if err != nil {
		return "", err
	}

	model := g.client.GenerativeModel(g.imageModel)
	resp, err := model.GenerateContent(ctx, img, genai.Text(prompt))
	if err != nil {
		return "", wrapGenerateError(err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return EncodeDataURI(blob.MIMEType, blob.Data), nil
			}
		}
	}
	return "", fmt.Errorf("no image in model response")
}

func imagePart(imageRef string) (genai.Part, error) {
	mimeType, data, err := LoadImage(imageRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %v", err)
	}
	return genai.Blob{MIMEType: mimeType, Data: data}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

// wrapGenerateError tags quota and rate limit failures with ErrQuotaExceeded
func wrapGenerateError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "429") || strings.Contains(msg, "resource_exhausted") || strings.Contains(msg, "resource has been exhausted") {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("failed to generate content: %w", err)
}
