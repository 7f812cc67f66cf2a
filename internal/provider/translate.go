package provider

import (
	"context"
	"fmt"
	"time"
)

const defaultTranslateBaseURL = "https://translation.googleapis.com/language/translate/v2"

// TranslateClientConfig holds configuration for the translation client.
type TranslateClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// TranslateClient calls the Google Translate v2 API.
type TranslateClient struct {
	gateway
	apiKey  string
	baseURL string
}

// NewTranslateClient creates a translation client.
func NewTranslateClient(cfg TranslateClientConfig) *TranslateClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultTranslateBaseURL
	}
	return &TranslateClient{
		gateway: newGateway("translate", cfg.Timeout),
		apiKey:  cfg.APIKey,
		baseURL: base,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text from source to target language.
func (c *TranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := c.requireKey(c.apiKey); err != nil {
		return "", err
	}
	if text == "" {
		return "", newError(KindRejected, c.name, fmt.Errorf("text to translate is required"))
	}

	req := translateRequest{Q: text, Source: source, Target: target, Format: "text"}
	var resp translateResponse
	if err := c.postJSON(ctx, c.baseURL+"?key="+c.apiKey, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Data.Translations) == 0 {
		return "", newError(KindRejected, c.name, fmt.Errorf("empty translation response"))
	}
	return resp.Data.Translations[0].TranslatedText, nil
}
