package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/feedpress/pkg/config"
)

// errNoJSONArray is returned when the response has no json array to parse
var errNoJSONArray = errors.New("no json array found in response")

// Tagger uses LLM to assign tags to posts
type Tagger struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewTagger creates a new LLM tagger
func NewTagger(cfg config.LLMConfig) *Tagger {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}
	if cfg.MaxTags <= 0 {
		cfg.MaxTags = 5
	}

	return &Tagger{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for tag assignment
const defaultSystemPrompt = `You are an AI assistant that assigns tags to blog posts imported from RSS feeds.
Tags are short lowercase keywords (1-3 words) describing the main subjects of the post.
Prefer tags from the provided list of existing tags when they fit. Only create new tags if necessary.
Write tags in the same language as the post content.
Respond with a JSON array of strings and nothing else, for example: ["golang", "databases", "performance"]`

// TagRequest contains post data used for tag assignment
type TagRequest struct {
	Title        string
	Content      string   // plain text
	ExistingTags []string // tags already known to the site
}

// Tags returns up to max_tags normalized tags for the post
func (t *Tagger) Tags(ctx context.Context, req TagRequest) ([]string, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return []string{}, nil
	}
	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	prompt := t.buildPrompt(req)

	// retry up to 3 times if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       t.config.Model,
			Temperature: float32(t.config.Temperature),
			MaxTokens:   t.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: t.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := t.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("no response from llm")
		}

		tags, err := t.parseResponse(resp.Choices[0].Message.Content)
		if err == nil {
			return tags, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// buildPrompt creates the prompt for the LLM
func (t *Tagger) buildPrompt(req TagRequest) string {
	var sb strings.Builder

	if len(req.ExistingTags) > 0 {
		sb.WriteString("Existing tags (use one of these when applicable):\n")
		sb.WriteString(strings.Join(req.ExistingTags, ", "))
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("Assign up to %d tags to this post.\n\n", t.config.MaxTags))
	sb.WriteString(fmt.Sprintf("Title: %s\n", req.Title))
	if req.Content != "" {
		// limit content to first 1000 chars
		content := req.Content
		if utf8.RuneCountInString(content) > 1000 {
			content = string([]rune(content)[:1000]) + "..."
		}
		sb.WriteString(fmt.Sprintf("Content: %s\n", content))
	}
	sb.WriteString("\nRespond with a JSON array of tags.")
	return sb.String()
}

// parseResponse extracts the json array of tags from the response and normalizes it
func (t *Tagger) parseResponse(content string) ([]string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, errNoJSONArray
	}

	var raw []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse json array response: %w", err)
	}
	return NormalizeTags(raw, t.config.MaxTags), nil
}

// NormalizeTags lowercases and trims tags, drops empty and duplicate ones and keeps at most max tags.
// max <= 0 keeps all tags. Order is preserved.
func NormalizeTags(tags []string, maxTags int) []string {
	res := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.Join(strings.Fields(tag), " "))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		res = append(res, tag)
		if maxTags > 0 && len(res) >= maxTags {
			break
		}
	}
	return res
}
