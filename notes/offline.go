package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	llmx "github.com/tanpawarit/screenplay/ability/llm"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
	memoryx "github.com/tanpawarit/screenplay/screenplay/memory"
	perspectivex "github.com/tanpawarit/screenplay/screenplay/perspective"
)

// Offline keeps everything in the actor's memory.
var Offline = perspectivex.MustNew("offline", func(r *perspectivex.Registry) {
	r.Handle(SignIn, func(params contractx.Params) contractx.Interaction {
		username, _ := params.Get("username")
		return memoryx.Remember.That(itemUser).Is(username)
	})
	r.Handle(SignIn.Child("withPassword"), func(params contractx.Params) contractx.Interaction {
		username, _ := params.Get("username")
		password, bound := params.Get("password")
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			if pw, ok := password.(string); !bound || !ok || pw == "" {
				return nil, fmt.Errorf("%w: empty password for %v", ErrInvalidCredentials, username)
			}
			return memoryx.Remember.That(itemUser).Is(username)(ctx, scene)
		}
	})
	r.Handle(AddNote, func(params contractx.Params) contractx.Interaction {
		text, _ := params.Get("text")
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			if _, err := memoryx.RecallAs[any](scene, itemUser); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrNotSignedIn, err)
			}
			list, err := rememberedNotes(scene)
			if err != nil {
				return nil, err
			}
			list = append(list, fmt.Sprint(text))
			return memoryx.Remember.That(itemNotes).Is(list)(ctx, scene)
		}
	})
	r.Handle(NoteCount, func(contractx.Params) contractx.Interaction {
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			list, err := rememberedNotes(scene)
			if err != nil {
				return nil, err
			}
			return len(list), nil
		}
	})
	r.Handle(SummariseNotes, func(contractx.Params) contractx.Interaction {
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			list, err := rememberedNotes(scene)
			if err != nil {
				return nil, err
			}
			return scene.Actor.Asks(ctx, llmx.Consult.About(summaryPrompt(list)))
		}
	})
})

func rememberedNotes(scene contractx.Scene) ([]string, error) {
	list, err := memoryx.RecallAs[[]string](scene, itemNotes)
	if errors.Is(err, contractx.ErrNothingRemembered) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return append([]string(nil), list...), nil
}

func summaryPrompt(list []string) string {
	var b strings.Builder
	b.WriteString("Summarise these notes in one sentence:")
	for _, n := range list {
		b.WriteString("\n- ")
		b.WriteString(n)
	}
	return b.String()
}
