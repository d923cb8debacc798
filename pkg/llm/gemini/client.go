// Package gemini implements llm.Provider and llm.AssetHost for Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"google.golang.org/api/iterator"
	"google.golang.org/genai"

	"reelatlas/pkg/config"
	"reelatlas/pkg/llm"
	"reelatlas/pkg/tracker"
)

// providerName is the tracker key for Gemini calls.
const providerName = "gemini"

// Client implements llm.Provider and llm.AssetHost for Google Gemini.
type Client struct {
	genaiClient *genai.Client
	apiKey      string
	modelName   string
	tracker     *tracker.Tracker
	logPath     string

	pollInterval time.Duration
	clock        clockwork.Clock

	mu sync.RWMutex
}

// NewClient creates a new Gemini client.
func NewClient(cfg config.GeminiConfig, logPath string, t *tracker.Tracker) (*Client, error) {
	c := &Client{
		tracker: t,
		logPath: logPath,
		clock:   clockwork.NewRealClock(),
	}
	if err := c.Configure(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure updates the client with new settings.
func (c *Client) Configure(cfg config.GeminiConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiKey = cfg.Key
	c.modelName = cfg.Model
	c.pollInterval = cfg.UploadPollInterval.Std()

	if c.modelName == "" {
		c.modelName = "gemini-2.5-flash"
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 2 * time.Second
	}

	if c.apiKey == "" {
		// Can't initialize without key.
		c.genaiClient = nil
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}
	c.genaiClient = client

	// Validate Model Availability
	if err := c.validateModel(context.Background()); err != nil {
		slog.Warn("Gemini model validation failed (proceeding anyway)", "error", err)
		// We do NOT return error here, to allow startup even if API is flaky/rate-limited.
		// If the key/model is truly invalid, actual generation calls will fail later.
	}

	return nil
}

// Close cleans up resources.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.genaiClient = nil
}

// HealthCheck verifies that the client is configured.
func (c *Client) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.genaiClient == nil {
		return fmt.Errorf("gemini client not configured")
	}
	return nil
}

// GenerateText sends a prompt and returns the text response.
func (c *Client) GenerateText(ctx context.Context, name, prompt string) (string, error) {
	return c.GenerateTextWithSystem(ctx, name, "", prompt)
}

// GenerateTextWithSystem sends a prompt with a system instruction and returns
// the text response.
func (c *Client) GenerateTextWithSystem(ctx context.Context, name, system, prompt string) (string, error) {
	client, modelName := c.snapshot()
	if client == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), generationConfig(system, ""))
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("ERROR: %v", err))
		c.trackFailure()
		return "", fmt.Errorf("generate text error: %w", err)
	}

	text, err := getResponseText(resp)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("TEXT_PARSE_ERROR: %v", err))
		c.trackFailure()
		return "", err
	}

	c.logPrompt(name, prompt, text)
	c.trackSuccess()
	return text, nil
}

// GenerateVideoText sends a prompt together with an uploaded video asset and
// returns the text response. The asset must be active; see AwaitActive.
func (c *Client) GenerateVideoText(ctx context.Context, name, system, prompt string, asset llm.AssetRef, mimeType string) (string, error) {
	client, modelName := c.snapshot()
	if client == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	parts := []*genai.Part{
		genai.NewPartFromURI(asset.URI, mimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, generationConfig(system, ""))
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("ERROR: %v", err))
		c.trackFailure()
		return "", fmt.Errorf("generate video text error: %w", err)
	}

	text, err := getResponseText(resp)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("TEXT_PARSE_ERROR: %v", err))
		c.trackFailure()
		return "", err
	}

	c.logPrompt(name, prompt, text)
	c.trackSuccess()
	return text, nil
}

// GenerateJSON sends a prompt and unmarshals the response into the target
// struct. A syntactically broken response is reported as
// llm.ErrMalformedResponse so callers can degrade instead of failing.
func (c *Client) GenerateJSON(ctx context.Context, name, system, prompt string, target any) error {
	client, modelName := c.snapshot()
	if client == nil {
		return fmt.Errorf("gemini client not configured")
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), generationConfig(system, "application/json"))
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("ERROR: %v", err))
		c.trackFailure()
		return fmt.Errorf("generate json error: %w", err)
	}

	text, err := getResponseText(resp)
	if err != nil {
		c.logPrompt(name, prompt, fmt.Sprintf("TEXT_PARSE_ERROR: %v", err))
		c.trackFailure()
		return err
	}

	// Sanitize Markdown JSON blocks if present
	cleaned := llm.CleanJSONBlock(text)
	c.logPrompt(name, prompt, cleaned)

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		c.trackFailure()
		return fmt.Errorf("%w: %v. Response: %s", llm.ErrMalformedResponse, err, cleaned)
	}

	c.trackSuccess()
	return nil
}

func (c *Client) snapshot() (*genai.Client, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.genaiClient, c.modelName
}

func generationConfig(system, responseMIMEType string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if responseMIMEType != "" {
		cfg.ResponseMIMEType = responseMIMEType
	}
	return cfg
}

func (c *Client) trackSuccess() {
	if c.tracker != nil {
		c.tracker.TrackAPISuccess(providerName)
	}
}

func (c *Client) trackFailure() {
	if c.tracker != nil {
		c.tracker.TrackAPIFailure(providerName)
	}
}

func (c *Client) logPrompt(name, prompt, response string) {
	if c.logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(c.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	wrappedResponse := llm.WordWrap(response, 80)
	entry := fmt.Sprintf("[%s] PROMPT: %s\nPROMPT_TEXT:\n%s\n\nRESPONSE:\n%s\n%s\n",
		timestamp, name, prompt, wrappedResponse, strings.Repeat("-", 80))

	_, _ = f.WriteString(entry)
}

func getResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// validateModel checks if the configured model is available for the API key.
func (c *Client) validateModel(ctx context.Context) error {
	// Ensure model name has 'models/' prefix
	name := c.modelName
	if !strings.HasPrefix(name, "models/") {
		name = "models/" + name
	}

	// Try to get the specific model (1 API call)
	_, err := c.genaiClient.Models.Get(ctx, name, nil)
	if err == nil {
		slog.Debug("Gemini model validation success", "model", c.modelName)
		return nil
	}

	slog.Warn("Gemini model validation failed, fetching available models...", "model", c.modelName, "error", err)

	// Fetch available models for recovery
	iter, listErr := c.genaiClient.Models.List(ctx, nil)
	if listErr != nil {
		slog.Warn("Failed to list models for recovery", "error", listErr)
		return nil // Proceed anyway
	}

	var availableModels []string
	for {
		resp, nextErr := iter.Next(ctx)
		if nextErr == iterator.Done {
			break
		}
		if nextErr != nil {
			break
		}
		if strings.Contains(strings.ToLower(resp.Name), "gemini") {
			availableModels = append(availableModels, resp.Name)
		}
	}

	slog.Error("Configured model not found", "configured", c.modelName)
	slog.Error("Available 'gemini' models for this key:")
	for _, m := range availableModels {
		slog.Error("- " + m)
	}

	return nil // Proceed anyway (lazy validation on generation)
}
