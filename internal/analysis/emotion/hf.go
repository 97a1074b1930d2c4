package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const hfInferenceBaseURL = "https://api-inference.huggingface.co/models/"

// HFLabeler queries the HuggingFace Inference API for multi-label emotion
// scores. Used when HF_API_KEY is configured; otherwise the lexicon labeler
// stands in.
type HFLabeler struct {
	apiKey string
	model  string
	client *http.Client
}

// NewHFLabeler builds a labeler for the given hosted model.
func NewHFLabeler(apiKey, model string) *HFLabeler {
	if model == "" {
		model = "cardiffnlp/twitter-roberta-base-emotion"
	}
	return &HFLabeler{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scores sends the text to the inference endpoint and flattens the response.
func (l *HFLabeler) Scores(ctx context.Context, text string) ([]LabelScore, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfInferenceBaseURL+l.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+l.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inference returned status %d: %s", resp.StatusCode, string(payload))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// The API nests results one level deep for single inputs.
	var nested [][]hfLabelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return flattenScores(nested[0]), nil
	}

	var flat []hfLabelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("unexpected inference response shape: %w", err)
	}
	return flattenScores(flat), nil
}

func flattenScores(in []hfLabelScore) []LabelScore {
	out := make([]LabelScore, 0, len(in))
	for _, s := range in {
		out = append(out, LabelScore{Label: strings.ToLower(s.Label), Score: s.Score})
	}
	return out
}
