package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

// ErrAgentStepLimit is returned when the model keeps calling tools past the step budget.
var ErrAgentStepLimit = errors.New("agent exceeded tool-calling step limit")

// ToolExecutor exposes callable tools to the agent.
type ToolExecutor interface {
	Specs() []types.ToolSpec
	Execute(ctx context.Context, name string, args map[string]any) (any, error)
}

// AgentGenerator lets Gemini call the tools itself before answering.
type AgentGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	tools       ToolExecutor
	maxSteps    int
	logger      *slog.Logger
}

func NewAgentGenerator(ctx context.Context, cfg GeminiConfig, tools ToolExecutor, maxSteps int, logger *slog.Logger) (*AgentGenerator, error) {
	client, err := genai.NewClient(ctx, cfg.clientConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if maxSteps <= 0 {
		maxSteps = 6
	}
	return &AgentGenerator{
		client:      client,
		model:       cfg.model(),
		temperature: cfg.Temperature,
		tools:       tools,
		maxSteps:    maxSteps,
		logger:      logger,
	}, nil
}

func (a *AgentGenerator) Model() string {
	return a.model
}

func (a *AgentGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(a.temperature),
		Tools:       []*genai.Tool{{FunctionDeclarations: functionDeclarations(a.tools.Specs())}},
	}
	contents := genai.Text(prompt)

	for step := 1; step <= a.maxSteps; step++ {
		resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
		if err != nil {
			return "", fmt.Errorf("agent: generate content (step %d): %w", step, err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			text := resp.Text()
			if strings.TrimSpace(text) == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", ErrEmptyResponse
		}
		contents = append(contents, resp.Candidates[0].Content)

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			a.logger.DebugContext(ctx, "Agent tool call",
				slog.Int("step", step), slog.String("tool", call.Name), slog.Any("args", call.Args))

			output := map[string]any{}
			result, err := a.tools.Execute(ctx, call.Name, call.Args)
			if err != nil {
				output["error"] = err.Error()
			} else {
				output["output"] = result
			}
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, output))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return "", ErrAgentStepLimit
}

func functionDeclarations(specs []types.ToolSpec) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		props := make(map[string]*genai.Schema, len(spec.Params))
		var required []string
		for _, p := range spec.Params {
			props[p.Name] = &genai.Schema{Type: schemaType(p.Type), Description: p.Description}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   required,
			},
		})
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}
