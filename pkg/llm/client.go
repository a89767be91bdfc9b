// Package llm runs structured completions against the OpenAI API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const DefaultModel = "gpt-4o"

// Agent fixes the instructions and output shape for one structured
// completion role.
type Agent struct {
	Name         string
	Instructions string
	Schema       map[string]any
}

type Client struct {
	api     openai.Client
	model   openai.ChatModel
	options []option.RequestOption
}

// Option configures a Client.
type Option func(*Client)

func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.options = append(c.options, option.WithAPIKey(apiKey))
	}
}

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.options = append(c.options, option.WithBaseURL(endpoint))
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.options = append(c.options, option.WithHTTPClient(client))
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

func New(opts ...Option) *Client {
	c := &Client{model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	c.api = openai.NewClient(c.options...)
	return c
}

// run issues one chat completion constrained to the agent's JSON schema
// and returns the raw JSON body of the model's reply.
func (c *Client) run(ctx context.Context, agent Agent, prompt string) ([]byte, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(agent.Instructions),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   agent.Name,
					Schema: agent.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("completion returned empty content")
	}
	return []byte(content), nil
}

// decode unmarshals a structured reply into out, failing the stage on
// shape mismatch instead of passing a malformed value downstream.
func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("completion output did not match expected shape: %w", err)
	}
	return nil
}
