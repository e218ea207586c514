package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/service"
)

// ErrTagsPending is returned when the server queued tag generation instead
// of answering inline.
var ErrTagsPending = errors.New("tag generation is still processing")

// AI wraps the assistant endpoints. Results are suggestions only.
type AI struct {
	client *Client
}

var _ service.Assistant = (*AI)(nil)

type textRequest struct {
	Text string `json:"text"`
}

// EnhanceText asks for an improved version of a description.
func (a *AI) EnhanceText(ctx context.Context, text string) (string, error) {
	var resp struct {
		EnhancedText string `json:"enhanced_text"`
	}
	if err := a.client.save(ctx, http.MethodPost, "/ai/enhance-text/", textRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.EnhancedText, nil
}

// GenerateTags asks for search tags describing text.
func (a *AI) GenerateTags(ctx context.Context, text string) ([]string, error) {
	var resp struct {
		TaskID string   `json:"task_id"`
		Tags   []string `json:"tags"`
	}
	if err := a.client.save(ctx, http.MethodPost, "/ai/generate-tags/", textRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	if resp.Tags == nil && resp.TaskID != "" {
		return nil, fmt.Errorf("%w: %w (task %s)", common.ErrSaveFailed, ErrTagsPending, resp.TaskID)
	}
	return resp.Tags, nil
}

// Suggestions returns search phrases related to text.
func (a *AI) Suggestions(ctx context.Context, text string) ([]string, error) {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := a.client.save(ctx, http.MethodPost, "/ai/get-suggestions/", textRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}
