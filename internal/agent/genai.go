package agent

import (
	"context"
	"fmt"

	"github.com/rohbot/rohbot/internal/model"
	"google.golang.org/genai"
)

// GenAICompleter implements Completer on top of the Gemini API. The
// system instruction is applied fresh on every call and is never part
// of the stored history.
type GenAICompleter struct {
	client            *genai.Client
	model             string
	systemInstruction string
}

func NewGenAICompleter(client *genai.Client, modelName string, systemInstruction string) *GenAICompleter {
	return &GenAICompleter{
		client:            client,
		model:             modelName,
		systemInstruction: systemInstruction,
	}
}

func (c *GenAICompleter) Complete(ctx context.Context, history []model.Content, tools []*FunctionDeclaration, onText func(string)) (model.Content, error) {
	contents := toGenAIContents(history)
	config := c.generateConfig(tools)

	if onText == nil {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
		if err != nil {
			return model.Content{}, fmt.Errorf("genai: generate content: %w", err)
		}
		return candidateContent(resp), nil
	}

	// Streaming path: forward text fragments as they arrive and stitch
	// the chunks back into one authoritative assistant turn.
	merged := model.Content{Role: model.RoleModel}
	for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, config) {
		if err != nil {
			return model.Content{}, fmt.Errorf("genai: generate content stream: %w", err)
		}

		chunk := candidateContent(resp)
		for _, part := range chunk.Parts {
			if part.Text != "" {
				onText(part.Text)
			}
		}
		merged.Parts = append(merged.Parts, chunk.Parts...)
	}

	return merged, nil
}

func (c *GenAICompleter) generateConfig(tools []*FunctionDeclaration) *genai.GenerateContentConfig {
	functions := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, fd := range tools {
		functions = append(functions, &genai.FunctionDeclaration{
			Name:                 fd.Name,
			Description:          fd.Description,
			ParametersJsonSchema: fd.ParametersSchema,
			ResponseJsonSchema:   fd.ResponseSchema,
		})
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.systemInstruction}},
		},
		Temperature: genai.Ptr[float32](0),
	}
	if len(functions) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: functions}}
	}

	return config
}

// candidateContent extracts the first candidate's content as a model
// turn. An empty response yields an empty model turn, which the agent
// loop treats as a plain (empty) answer.
func candidateContent(resp *genai.GenerateContentResponse) model.Content {
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		return toModelContent(candidate.Content)
	}
	return model.Content{Role: model.RoleModel}
}

// toGenAIContents converts stored history into genai request contents.
func toGenAIContents(contents []model.Content) []*genai.Content {
	result := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		gc := &genai.Content{Role: c.Role, Parts: make([]*genai.Part, 0, len(c.Parts))}
		for _, p := range c.Parts {
			gp := &genai.Part{Text: p.Text}
			if p.FunctionCall != nil {
				gp.FunctionCall = &genai.FunctionCall{
					ID:   p.FunctionCall.ID,
					Name: p.FunctionCall.Name,
					Args: p.FunctionCall.Args,
				}
			}
			if p.FunctionResponse != nil {
				gp.FunctionResponse = &genai.FunctionResponse{
					ID:       p.FunctionResponse.ID,
					Name:     p.FunctionResponse.Name,
					Response: p.FunctionResponse.Response,
				}
			}
			gc.Parts = append(gc.Parts, gp)
		}
		result = append(result, gc)
	}
	return result
}

// toModelContent converts a genai content into the stored history form.
func toModelContent(c *genai.Content) model.Content {
	mc := model.Content{Role: c.Role, Parts: make([]model.Part, 0, len(c.Parts))}
	if mc.Role == "" {
		mc.Role = model.RoleModel
	}
	for _, p := range c.Parts {
		mp := model.Part{Text: p.Text}
		if p.FunctionCall != nil {
			mp.FunctionCall = &model.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			mp.FunctionResponse = &model.FunctionResponse{
				ID:       p.FunctionResponse.ID,
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
		mc.Parts = append(mc.Parts, mp)
	}
	return mc
}
