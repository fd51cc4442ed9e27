package llm

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/probatio/probatio/internal/model"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config model.LLMConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config model.LLMConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	// Simple check: try to list models (lightweight API call)
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Summarize generates a narrative using OpenAI's Chat Completions API
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Report, req.AllowedArtifacts)
	}

	chatModel := req.Model
	if chatModel == "" {
		chatModel = p.config.Model
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a careful assistant that summarizes evidence conflict reports with strict adherence to citation constraints.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3, // Lower temperature for more focused, factual output
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)

	cited := ExtractArtifactCodes(summary)

	if p.config.StrictCitations {
		if leaked := DisallowedCitations(cited, req.AllowedArtifacts); len(leaked) > 0 {
			return nil, fmt.Errorf("citation leak: model cited disallowed artifacts: %s", strings.Join(leaked, ", "))
		}
	}

	return &SummarizeResponse{
		Summary:        summary,
		CitedArtifacts: cited,
		Model:          chatModel,
		TokensUsed:     resp.Usage.TotalTokens,
	}, nil
}

var artifactPattern = regexp.MustCompile(`\bART-\d{5}\b`)

// ExtractArtifactCodes returns the unique artifact codes cited in text, in
// order of first appearance.
func ExtractArtifactCodes(text string) []string {
	matches := artifactPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, code := range matches {
		if !seen[code] {
			seen[code] = true
			unique = append(unique, code)
		}
	}
	return unique
}

// DisallowedCitations returns the cited codes missing from the allowlist.
func DisallowedCitations(cited, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, code := range allowed {
		allowedSet[code] = true
	}

	var leaked []string
	for _, code := range cited {
		if !allowedSet[code] {
			leaked = append(leaked, code)
		}
	}
	return leaked
}
