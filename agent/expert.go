package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Expert is a chat with a model dedicated to one skill.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert. Function calls in the reply are answered
// from the expert's Library and sent back, until the model replies with
// text only.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if e.chat == nil {
		return nil, fmt.Errorf("expert %s is not started", e.Name)
	}
	for {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, fmt.Errorf("expert %s: %w", e.Name, err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		reply := resp.Candidates[0].Content

		parts = nil
		for _, p := range reply.Parts {
			if p.FunctionCall == nil {
				continue
			}
			if e.Library == nil {
				return nil, fmt.Errorf("expert %s cannot call function %s", e.Name, p.FunctionCall.Name)
			}
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
		}
		if len(parts) == 0 {
			return reply, nil
		}
	}
}

// Declaration describes the expert as a function taking a single question.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type:     genai.TypeObject,
			Required: []string{"question"},
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString, Description: "What to ask the expert, in plain language."},
			},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "The expert's answer, in markdown."},
	}
}

// Call is the Func of the expert when it is part of another expert's Library.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return failure(id, e.Name, fmt.Errorf("question must be a string, got %T", args["question"]))
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return failure(id, e.Name, err)
	}
	r := text(answer)
	log.Printf("%s was asked %q", e.Name, question)
	return success(id, e.Name, r)
}
