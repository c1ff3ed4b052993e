// Package llm is an ability that answers free-form prompts with a chat model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
)

// AbilityName is the name the assistant is granted under.
const AbilityName = "llm"

var ErrEmptyAnswer = errors.New("llm returned an empty answer")

// Asker answers a prompt.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Assistant wraps a chat model behind a single Ask call.
type Assistant struct {
	model        einomodel.BaseChatModel
	systemPrompt string
}

func NewAssistant(model einomodel.BaseChatModel, systemPrompt string) (*Assistant, error) {
	if model == nil {
		return nil, errors.New("chat model is required")
	}
	return &Assistant{
		model:        model,
		systemPrompt: strings.TrimSpace(systemPrompt),
	}, nil
}

// Abilities returns the bundle that grants a to an actor.
func (a *Assistant) Abilities() contractx.Abilities {
	return contractx.Abilities{AbilityName: a}
}

func (a *Assistant) Ask(ctx context.Context, prompt string) (string, error) {
	messages := make([]*schema.Message, 0, 2)
	if a.systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(a.systemPrompt))
	}
	messages = append(messages, schema.UserMessage(prompt))

	msg, err := a.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", ErrEmptyAnswer
	}
	return strings.TrimSpace(msg.Content), nil
}

type consult struct{}

// Consult builds interactions that put a prompt to the granted assistant:
//
//	answer, err := actor.Asks(ctx, llm.Consult.About("Summarise my notes"))
var Consult consult

func (consult) About(prompt string) contractx.Interaction {
	return func(ctx context.Context, scene contractx.Scene) (any, error) {
		asker, err := contractx.Use[Asker](scene, AbilityName)
		if err != nil {
			return nil, fmt.Errorf("consult: %w", err)
		}
		return asker.Ask(ctx, prompt)
	}
}
