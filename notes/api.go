package notes

import (
	"context"
	"fmt"

	httpapix "github.com/tanpawarit/screenplay/ability/httpapi"
	llmx "github.com/tanpawarit/screenplay/ability/llm"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
	memoryx "github.com/tanpawarit/screenplay/screenplay/memory"
	perspectivex "github.com/tanpawarit/screenplay/screenplay/perspective"
)

type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

type noteRequest struct {
	Token string `json:"token"`
	Text  string `json:"text"`
}

type countResponse struct {
	Count int `json:"count"`
}

type listResponse struct {
	Notes []string `json:"notes"`
}

// API drives the application through its REST endpoints. Signing in without a
// password is not supported by the API, so only signIn.withPassword is
// registered.
var API = perspectivex.MustNew("api", func(r *perspectivex.Registry) {
	r.Handle(SignIn.Child("withPassword"), func(params contractx.Params) contractx.Interaction {
		username, _ := params.Get("username")
		password, _ := params.Get("password")
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			client, err := contractx.Use[*httpapix.Client](scene, httpapix.AbilityName)
			if err != nil {
				return nil, err
			}
			var out sessionResponse
			req := sessionRequest{Username: fmt.Sprint(username), Password: fmt.Sprint(password)}
			if err := client.Post(ctx, "/sessions", req, &out); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
			}
			if _, err := memoryx.Remember.That(itemUser).Is(username)(ctx, scene); err != nil {
				return nil, err
			}
			return memoryx.Remember.That(itemToken).Is(out.Token)(ctx, scene)
		}
	})
	r.Handle(AddNote, func(params contractx.Params) contractx.Interaction {
		text, _ := params.Get("text")
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			client, token, err := session(scene)
			if err != nil {
				return nil, err
			}
			return nil, client.Post(ctx, "/notes", noteRequest{Token: token, Text: fmt.Sprint(text)}, nil)
		}
	})
	r.Handle(NoteCount, func(contractx.Params) contractx.Interaction {
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			client, _, err := session(scene)
			if err != nil {
				return nil, err
			}
			var out countResponse
			if err := client.Get(ctx, "/notes/count", &out); err != nil {
				return nil, err
			}
			return out.Count, nil
		}
	})
	r.Handle(SummariseNotes, func(contractx.Params) contractx.Interaction {
		return func(ctx context.Context, scene contractx.Scene) (any, error) {
			client, _, err := session(scene)
			if err != nil {
				return nil, err
			}
			var out listResponse
			if err := client.Get(ctx, "/notes", &out); err != nil {
				return nil, err
			}
			return scene.Actor.Asks(ctx, llmx.Consult.About(summaryPrompt(out.Notes)))
		}
	})
})

func session(scene contractx.Scene) (*httpapix.Client, string, error) {
	client, err := contractx.Use[*httpapix.Client](scene, httpapix.AbilityName)
	if err != nil {
		return nil, "", err
	}
	token, err := memoryx.RecallAs[string](scene, itemToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}
	return client, token, nil
}
