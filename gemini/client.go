// Package gemini calls the Generative Language API to classify waste photos.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Bins the classifier may recommend.
const (
	BinRecyclables = "recyclables"
	BinLandfill    = "landfill"
	BinOrganics    = "organics"
)

var (
	// ErrParse means the model replied but the reply was not usable JSON or
	// was missing required fields. Retry with a new image.
	ErrParse = errors.New("classification reply not parseable")
	// ErrService means the call to the model itself failed (network, quota,
	// auth, non-2xx). Retry later.
	ErrService = errors.New("classification service unavailable")
)

// VerificationResult is the parsed classifier verdict for a waste photo.
type VerificationResult struct {
	WasteType  string  `json:"wasteType"`
	Quantity   string  `json:"quantity"`
	Confidence float64 `json:"confidence"`
	Bin        string  `json:"bin"`
}

// ContaminationResult is the parsed verdict of the contamination variant.
// Only the percentage and summary are required.
type ContaminationResult struct {
	ContaminationPercentage float64 `json:"contaminationPercentage"`
	ContaminationSummary    string  `json:"contaminationSummary"`
	Confidence              float64 `json:"confidence,omitempty"`
	WasteType               string  `json:"wasteType,omitempty"`
	Quantity                string  `json:"quantity,omitempty"`
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []contentPart `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify sends the image with the fixed waste-analysis prompt and returns
// the parsed result. A single attempt: no retry or backoff.
func (c *Client) Classify(ctx context.Context, image []byte, mimeType string) (*VerificationResult, error) {
	text, err := c.generate(ctx, classifyPrompt, image, mimeType)
	if err != nil {
		return nil, err
	}

	var result VerificationResult
	if err := json.Unmarshal([]byte(stripFences(text)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := result.validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClassifyContamination asks for the fraction of items that do not belong in
// targetBin plus a short summary.
func (c *Client) ClassifyContamination(ctx context.Context, image []byte, mimeType, targetBin string) (*ContaminationResult, error) {
	text, err := c.generate(ctx, contaminationPrompt(targetBin), image, mimeType)
	if err != nil {
		return nil, err
	}

	cleaned := stripFences(text)

	// Probe for required fields before decoding into the typed struct, so a
	// reply missing them fails as a parse error rather than zero values.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, ok := probe["contaminationPercentage"]; !ok {
		return nil, fmt.Errorf("%w: missing contaminationPercentage", ErrParse)
	}
	if _, ok := probe["contaminationSummary"]; !ok {
		return nil, fmt.Errorf("%w: missing contaminationSummary", ErrParse)
	}

	var result ContaminationResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if result.ContaminationPercentage < 0 || result.ContaminationPercentage > 1 {
		return nil, fmt.Errorf("%w: contaminationPercentage out of range", ErrParse)
	}
	if strings.TrimSpace(result.ContaminationSummary) == "" {
		return nil, fmt.Errorf("%w: empty contaminationSummary", ErrParse)
	}
	return &result, nil
}

func (c *Client) generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", errors.New("image is required")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	var req generateRequest
	req.Contents = append(req.Contents, struct {
		Parts []contentPart `json:"parts"`
	}{
		Parts: []contentPart{
			{Text: prompt},
			{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			}},
		},
	})

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: request failed with status %d", ErrService, resp.StatusCode)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: response missing output text", ErrService)
	}
	return text, nil
}

// stripFences removes the optional ```json / ``` markdown fencing the model
// wraps around its reply.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

func (r *VerificationResult) validate() error {
	if strings.TrimSpace(r.WasteType) == "" {
		return fmt.Errorf("%w: missing wasteType", ErrParse)
	}
	if strings.TrimSpace(r.Quantity) == "" {
		return fmt.Errorf("%w: missing quantity", ErrParse)
	}
	if r.Confidence <= 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: confidence out of range", ErrParse)
	}
	bin := strings.ToLower(strings.TrimSpace(r.Bin))
	switch bin {
	case BinRecyclables, BinLandfill, BinOrganics:
		r.Bin = bin
	default:
		return fmt.Errorf("%w: missing or unknown bin %q", ErrParse, r.Bin)
	}
	return nil
}
