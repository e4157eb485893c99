package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	altai "github.com/sashabaranov/go-openai"

	"scry/internal/util/logx"
)

const DefaultModel = "gpt-4o-mini"

// OpenAI asks a chat completion model to choose the view.
type OpenAI struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	tools   Tools
}

func NewOpenAI(apiKey, baseURL, model string, timeout time.Duration, ts Tools) *OpenAI {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout, tools: ts}
}

func (c *OpenAI) Model() string { return c.model }

type viewResponse struct {
	View string `json:"view"`
	Tool string `json:"tool"`
}

func (c *OpenAI) Classify(ctx context.Context, lines []string) (Result, error) {
	if c == nil || c.apiKey == "" {
		return Result{}, ErrDisabled
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	descriptions := ""
	if c.tools != nil {
		descriptions = c.tools.Descriptions()
	}
	content, err := c.callAlt(ctx, systemPrompt(descriptions), "Analyze these log lines and select the best view:\n\n"+Sample(lines))
	if err != nil {
		return Result{}, err
	}
	var out viewResponse
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return Result{}, fmt.Errorf("parse model response %q: %w", content, err)
	}
	view, label, err := resolve(out.View, out.Tool, c.tools)
	if err != nil {
		return Result{}, err
	}
	logx.Infof("model %s selected view %s", c.model, label)
	return Result{View: view, Summary: fmt.Sprintf("OpenAI API (%s) → Selected view: %s", c.model, label)}, nil
}

func (c *OpenAI) callAlt(ctx context.Context, system, user string) (string, error) {
	cfg := altai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := altai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx, altai.ChatCompletionRequest{
		Model: c.model,
		Messages: []altai.ChatCompletionMessage{
			{Role: altai.ChatMessageRoleSystem, Content: system},
			{Role: altai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &altai.ChatCompletionResponseFormat{Type: altai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func systemPrompt(toolDescriptions string) string {
	var b strings.Builder
	b.WriteString("You are selecting the best terminal UI layout for viewing incoming logs. Respond ONLY with JSON. Available layouts:\n\n")
	b.WriteString("Built-in views:\n")
	b.WriteString("- Plain: good for freeform unstructured lines.\n")
	b.WriteString("- KeyValue: good for lines with key=value pairs.\n")
	b.WriteString("- Json: good for structured JSON logs.\n")
	if toolDescriptions != "" {
		b.WriteString("\nExternal tools (if installed):\n")
		b.WriteString(toolDescriptions)
		b.WriteString("\n")
	}
	b.WriteString("\nIf an external tool would provide a better viewing experience (e.g., jless for complex JSON, visidata for tabular data, lnav for log files with timestamps), prefer it over built-in views. Otherwise, use a built-in view.\n\n")
	b.WriteString("Respond with JSON:\n")
	b.WriteString(`{ "view": "Plain" } OR { "view": "KeyValue" } OR { "view": "Json" } OR { "view": "ExternalTool", "tool": "tool_name" }`)
	return b.String()
}
