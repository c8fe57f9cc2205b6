// Package moderation implements the synchronous NSFW gate that all
// post and comment content passes through before being stored.
//
// The classifier is an external LLM endpoint asked a strict Yes/No
// question. Classifier failures are availability decisions: by default
// the gate fails open (content is admitted, failure is logged) so the
// platform does not go read-only when the vendor is down; deployments
// that prefer strictness set fail_closed.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/system/apierr"
)

// Classifier answers whether text is NSFW. Implementations return the
// raw verdict string; the Gate interprets it.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

const classifyPrompt = "Analyze the following text and determine if it contains NSFW " +
	"(Not Safe For Work) content such as explicit sexual content, graphic violence, " +
	"hate speech, or other inappropriate material. Respond with only 'Yes' if it " +
	"contains NSFW content or 'No' if it does not.\n\nText: %s"

// GeminiClassifier calls the Gemini generateContent endpoint.
type GeminiClassifier struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewGeminiClassifier builds a classifier against the given API base
// (e.g. https://generativelanguage.googleapis.com).
func NewGeminiClassifier(endpoint, model, apiKey string, client *http.Client) *GeminiClassifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &GeminiClassifier{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		client:   client,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify sends the moderation prompt and returns the model's raw
// verdict text.
func (g *GeminiClassifier) Classify(ctx context.Context, text string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(classifyPrompt, text)}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding classify request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("classifier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding classify response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("classifier returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// Gate is the policy wrapper handlers call. A nil classifier disables
// the gate entirely (local development without an API key).
type Gate struct {
	cls        Classifier
	failClosed bool
	log        *zap.Logger
}

// NewGate builds the content gate. cls may be nil to disable checks.
func NewGate(cls Classifier, failClosed bool, log *zap.Logger) *Gate {
	return &Gate{cls: cls, failClosed: failClosed, log: log}
}

// Enabled reports whether a classifier is configured.
func (g *Gate) Enabled() bool { return g != nil && g.cls != nil }

// Check classifies each non-empty field and returns an invalid error
// if any is flagged. On classifier failure it admits the content
// (fail-open) unless the gate was configured fail-closed.
func (g *Gate) Check(ctx context.Context, fields ...string) error {
	if !g.Enabled() {
		return nil
	}

	for _, text := range fields {
		if strings.TrimSpace(text) == "" {
			continue
		}
		verdict, err := g.cls.Classify(ctx, text)
		if err != nil {
			if g.failClosed {
				return apierr.Internal(fmt.Errorf("content check unavailable: %w", err))
			}
			if g.log != nil {
				g.log.Warn("content check failed, admitting content", zap.Error(err))
			}
			continue
		}
		if flagged(verdict) {
			return apierr.Invalid("nsfw_content", "content flagged as NSFW")
		}
	}
	return nil
}

// flagged interprets the model's verdict. Anything that does not start
// with "yes" counts as clean; the prompt demands a bare Yes/No.
func flagged(verdict string) bool {
	v := strings.ToLower(strings.TrimSpace(verdict))
	return strings.HasPrefix(v, "yes")
}
