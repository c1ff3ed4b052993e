package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	httpapix "github.com/tanpawarit/screenplay/ability/httpapi"
	llmx "github.com/tanpawarit/screenplay/ability/llm"
	"github.com/tanpawarit/screenplay/notes"
	configx "github.com/tanpawarit/screenplay/pkg/config"
	_ "github.com/tanpawarit/screenplay/pkg/logger/autoload"
	actorx "github.com/tanpawarit/screenplay/screenplay/actor"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
	memoryx "github.com/tanpawarit/screenplay/screenplay/memory"
	perspectivex "github.com/tanpawarit/screenplay/screenplay/perspective"
)

type AppConfig struct {
	Perspective string `split_words:"true" default:"offline"`
	Username    string `split_words:"true" default:"ada"`
	Password    string `split_words:"true" default:"secret"`
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Error().Err(err).Msg("scenario failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	appCfg := configx.MustNew[AppConfig]("SCREENPLAY")

	perspective, abilities, err := choosePerspective(appCfg.Perspective)
	if err != nil {
		return err
	}

	actor := actorx.New(abilities, perspective, actorx.WithName(appCfg.Username)).
		GainsAbilities(memoryx.New().Abilities())

	if assistant, err := newAssistant(ctx); err != nil {
		log.Debug().Err(err).Msg("llm ability disabled")
	} else {
		actor.GainsAbilities(assistant.Abilities())
	}

	if _, err := actor.AttemptsTo(ctx,
		notes.SignIn.MustBind(appCfg.Username).MustThen("withPassword", appCfg.Password),
		notes.AddNote.MustBind("buy milk"),
		notes.AddNote.MustBind("water the plants"),
	); err != nil {
		return err
	}

	count, err := actorx.AsksFor[int](ctx, actor, notes.NoteCount.MustBind())
	if err != nil {
		return err
	}
	fmt.Printf("%s has %d notes through the %s perspective\n", actor.Name(), count, perspective.Name())

	if _, granted := actor.Abilities()[llmx.AbilityName]; granted {
		summary, err := actorx.AsksFor[string](ctx, actor, notes.SummariseNotes.MustBind())
		if err != nil {
			return err
		}
		fmt.Println(summary)
	}
	return nil
}

func choosePerspective(name string) (*perspectivex.Perspective, contractx.Abilities, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case notes.Offline.Name():
		return notes.Offline, contractx.Abilities{}, nil
	case notes.API.Name():
		apiCfg, err := configx.New[httpapix.Config]("NOTES_API")
		if err != nil {
			return nil, nil, err
		}
		client, err := httpapix.New(*apiCfg)
		if err != nil {
			return nil, nil, err
		}
		return notes.API, contractx.Abilities{httpapix.AbilityName: client}, nil
	default:
		return nil, nil, fmt.Errorf("unknown perspective %q (want %q or %q)", name, notes.Offline.Name(), notes.API.Name())
	}
}

func newAssistant(ctx context.Context) (*llmx.Assistant, error) {
	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return nil, err
	}
	model, err := llmCfg.NewChatModel(ctx)
	if err != nil {
		return nil, err
	}
	return llmx.NewAssistant(model, llmCfg.SystemPrompt)
}
