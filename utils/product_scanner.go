package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/raushankrgupta/glow-studio/config"
	"github.com/raushankrgupta/glow-studio/models"
	"google.golang.org/genai"
)

// The search tool cannot be combined with a JSON response schema, so the shape is asked for in the prompt
const scanJSONShape = ` Respond with a single JSON object with the string fields "brand", "name", "shade", "category", "hex" and "finish". No other text.`

// productScanner identifies products with Google Search grounding enabled
type productScanner struct {
	client *genai.Client
	model  string
	titler *LinkTitler
}

func newProductScanner(ctx context.Context, titler *LinkTitler) (*productScanner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %v", err)
	}
	return &productScanner{client: client, model: config.VisionModel, titler: titler}, nil
}

func (p *productScanner) identify(ctx context.Context, imageRef string) (models.Product, []models.GroundingLink, error) {
	mimeType, data, err := LoadImage(imageRef)
	if err != nil {
		return models.Product{}, nil, fmt.Errorf("failed to load image: %v", err)
	}

	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(scanPrompt + scanJSONShape),
	}, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return models.Product{}, nil, wrapGenerateError(err)
	}

	product, err := parseScannedProduct(groundedText(resp))
	if err != nil {
		return models.Product{}, nil, err
	}
	return product, p.titler.Fill(ctx, groundingLinks(resp)), nil
}

func parseScannedProduct(text string) (models.Product, error) {
	text = stripJSONFence(text)
	if text == "" {
		return models.Product{}, fmt.Errorf("no content generated")
	}

	var out struct {
		Brand    string `json:"brand"`
		Name     string `json:"name"`
		Shade    string `json:"shade"`
		Category string `json:"category"`
		Hex      string `json:"hex"`
		Finish   string `json:"finish"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return models.Product{}, fmt.Errorf("failed to parse model response: %v", err)
	}

	return models.Product{
		ID:          "scan-" + uuid.NewString(),
		Brand:       out.Brand,
		Name:        out.Name,
		Category:    models.ParseCategory(out.Category),
		Color:       out.Shade,
		Hex:         out.Hex,
		Finish:      models.ParseFinish(out.Finish),
		Description: scannedDescription,
	}, nil
}

// stripJSONFence removes a markdown code fence and any text around the outermost object
func stripJSONFence(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return strings.TrimSpace(text)
	}
	return text[start : end+1]
}

func groundedText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// groundingLinks lists the web pages the search grounded the answer on, one per chunk.
// Missing titles and pages are left empty for LinkTitler.Fill.
func groundingLinks(resp *genai.GenerateContentResponse) []models.GroundingLink {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var links []models.GroundingLink
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		var link models.GroundingLink
		if chunk.Web != nil {
			link.Title = chunk.Web.Title
			link.URI = chunk.Web.URI
		}
		links = append(links, link)
	}
	return links
}
