package style

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

const (
	// defaultModel is the Gemini model used when none is specified.
	defaultModel = "gemini-2.5-flash"

	// defaultTopK bounds the number of predictions returned when the
	// caller does not ask for a specific count.
	defaultTopK = 3

	// defaultMaxRetries bounds how often a failed generation call is
	// retried before giving up.
	defaultMaxRetries = 3
)

// GeminiOptions configures a GeminiRecognizer.
type GeminiOptions struct {
	// Model overrides the Gemini model name.
	Model string

	// APIKey overrides the GOOGLE_API_KEY environment variable.
	APIKey string

	// Logger receives recognition diagnostics. Defaults to a null
	// logger.
	Logger hclog.Logger

	// MaxRetries bounds retry attempts for transient API failures.
	MaxRetries uint64
}

// GeminiRecognizer identifies garments by asking a Gemini vision model
// to rank the taxonomy classes for an image.
type GeminiRecognizer struct {
	model      string
	apiKey     string
	logger     hclog.Logger
	maxRetries uint64
}

// NewGeminiRecognizer creates a recognizer backed by the Gemini API.
func NewGeminiRecognizer(opts GeminiOptions) *GeminiRecognizer {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	return &GeminiRecognizer{
		model:      opts.Model,
		apiKey:     opts.APIKey,
		logger:     opts.Logger,
		maxRetries: opts.MaxRetries,
	}
}

// clientSetup encapsulates client configuration and creation.
func (r *GeminiRecognizer) clientSetup(ctx context.Context) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}

	apiKey := r.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")
	}
	clientConfig.APIKey = apiKey

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	return client, nil
}

// Predict sends the image to the model and returns up to topK garment
// predictions ordered by confidence. Transient API failures are
// retried with Fibonacci backoff.
func (r *GeminiRecognizer) Predict(ctx context.Context, imagePath string, topK int) ([]Prediction, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	data, err := os.ReadFile(imagePath) // #nosec G304 -- caller validates the path
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	client, err := r.clientSetup(ctx)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(recognitionPrompt()),
		genai.NewPartFromBytes(data, http.DetectContentType(data)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0)),
	}

	r.logger.Debug("calling GenerateContent", "model", r.model, "image", imagePath, "bytes", len(data))

	var response *genai.GenerateContentResponse
	backoff := retry.NewFibonacci(1 * time.Second)
	err = retry.Do(ctx, retry.WithMaxRetries(r.maxRetries, backoff), func(ctx context.Context) error {
		var callErr error
		response, callErr = client.Models.GenerateContent(ctx, r.model, contents, genConfig)
		if callErr != nil {
			r.logger.Warn("garment recognition call failed", "error", callErr)
			return retry.RetryableError(callErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("garment recognition failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no prediction data in response")
	}

	var raw strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			raw.WriteString(part.Text)
		}
	}

	predictions, err := parsePredictions(raw.String(), topK)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("garment recognition complete", "predictions", len(predictions))
	return predictions, nil
}

// recognitionPrompt builds the instruction sent alongside the image.
func recognitionPrompt() string {
	return fmt.Sprintf(
		"Identify the garment shown in this photo. Respond with a JSON array of "+
			"candidate classifications ordered from most to least likely, each an "+
			"object with a \"class\" string and a \"confidence\" number between 0 and 1. "+
			"Use only these class names: %s. Do not include any other text.",
		strings.Join(ClassNames, ", "),
	)
}

// parsePredictions decodes the model's JSON reply, drops unknown
// classes and returns the topK best predictions by confidence.
func parsePredictions(raw string, topK int) ([]Prediction, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var decoded []Prediction
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse predictions: %w", err)
	}

	predictions := make([]Prediction, 0, len(decoded))
	for _, p := range decoded {
		if !IsKnownClass(p.Class) {
			continue
		}
		predictions = append(predictions, p)
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("no recognizable garment classes in response")
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})
	if len(predictions) > topK {
		predictions = predictions[:topK]
	}

	return predictions, nil
}
