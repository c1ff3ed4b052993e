package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	httpapix "github.com/tanpawarit/screenplay/ability/httpapi"
	llmx "github.com/tanpawarit/screenplay/ability/llm"
	actorx "github.com/tanpawarit/screenplay/screenplay/actor"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
	memoryx "github.com/tanpawarit/screenplay/screenplay/memory"
)

type echoModel struct {
	prompts []string
}

func (e *echoModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	last := input[len(input)-1].Content
	e.prompts = append(e.prompts, last)
	return &schema.Message{Role: schema.Assistant, Content: fmt.Sprintf("%d lines", strings.Count(last, "\n- "))}, nil
}

func (e *echoModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func newActor(t *testing.T, abilities contractx.Abilities) *actorx.Actor {
	t.Helper()
	return actorx.New(abilities, Offline, actorx.WithName("ada"), actorx.WithLogger(zerolog.Nop())).
		GainsAbilities(memoryx.New().Abilities())
}

func TestOfflineScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	model := &echoModel{}
	assistant, err := llmx.NewAssistant(model, "")
	if err != nil {
		t.Fatalf("NewAssistant() error = %v", err)
	}
	a := newActor(t, assistant.Abilities())

	_, err = a.AttemptsTo(ctx,
		SignIn.MustBind("ada").MustThen("withPassword", "secret"),
		AddNote.MustBind("buy milk"),
		AddNote.MustBind("call bob"),
	)
	if err != nil {
		t.Fatalf("AttemptsTo() error = %v", err)
	}

	count, err := actorx.AsksFor[int](ctx, a, NoteCount.MustBind())
	if err != nil || count != 2 {
		t.Fatalf("NoteCount = %d, %v, want 2", count, err)
	}

	summary, err := actorx.AsksFor[string](ctx, a, SummariseNotes.MustBind())
	if err != nil {
		t.Fatalf("SummariseNotes error = %v", err)
	}
	if summary != "2 lines" {
		t.Fatalf("SummariseNotes = %q", summary)
	}
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], "- call bob") {
		t.Fatalf("unexpected prompts: %v", model.prompts)
	}
}

func TestOfflineRequiresSignIn(t *testing.T) {
	t.Parallel()

	a := newActor(t, nil)
	_, err := a.AttemptsTo(context.Background(), AddNote.MustBind("buy milk"))
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("AttemptsTo() error = %v, want ErrNotSignedIn", err)
	}
}

func TestOfflineRejectsEmptyPassword(t *testing.T) {
	t.Parallel()

	a := newActor(t, nil)
	_, err := a.AttemptsTo(context.Background(), SignIn.MustBind("ada").MustThen("withPassword", ""))
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("AttemptsTo() error = %v, want ErrInvalidCredentials", err)
	}
}

type fakeNotesAPI struct {
	notes []string
}

func (f *fakeNotesAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode session: %v", err)
		}
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"token":"token-%s"}`, req.Username)
	})
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(listResponse{Notes: f.notes})
			return
		}
		var req noteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode note: %v", err)
		}
		if req.Token != "token-ada" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		f.notes = append(f.notes, req.Text)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/notes/count", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(countResponse{Count: len(f.notes)})
	})
	return mux
}

func TestAPIScenarioThroughPerspectiveSwap(t *testing.T) {
	t.Parallel()

	fake := &fakeNotesAPI{}
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client := httpapix.MustNew(httpapix.Config{URL: server.URL}, httpapix.WithHTTPClient(server.Client()))
	offline := newActor(t, contractx.Abilities{httpapix.AbilityName: client})
	a := offline.Through(API)
	ctx := context.Background()

	_, err := a.AttemptsTo(ctx,
		SignIn.MustBind("ada").MustThen("withPassword", "secret"),
		AddNote.MustBind("buy milk"),
	)
	if err != nil {
		t.Fatalf("AttemptsTo() error = %v", err)
	}
	if len(fake.notes) != 1 || fake.notes[0] != "buy milk" {
		t.Fatalf("server notes = %v", fake.notes)
	}

	count, err := actorx.AsksFor[int](ctx, a, NoteCount.MustBind())
	if err != nil || count != 1 {
		t.Fatalf("NoteCount = %d, %v, want 1", count, err)
	}

	// memory is shared with the offline actor, but its notes live elsewhere
	offlineCount, err := actorx.AsksFor[int](ctx, offline, NoteCount.MustBind())
	if err != nil || offlineCount != 0 {
		t.Fatalf("offline NoteCount = %d, %v, want 0", offlineCount, err)
	}
}

func TestAPIUnknownTaskListsAlternatives(t *testing.T) {
	t.Parallel()

	a := newActor(t, nil).Through(API)
	_, err := a.AttemptsTo(context.Background(), SignIn.MustBind("ada"))
	if !errors.Is(err, contractx.ErrUnknownTask) {
		t.Fatalf("AttemptsTo() error = %v, want ErrUnknownTask", err)
	}
	if !strings.Contains(err.Error(), "signIn.withPassword") {
		t.Fatalf("error %q does not list signIn.withPassword", err.Error())
	}
}

func TestOfflineRejectsUnboundPassword(t *testing.T) {
	t.Parallel()

	a := newActor(t, nil)
	_, err := a.AttemptsTo(context.Background(), SignIn.MustBind("ada").MustThen("withPassword"))
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("AttemptsTo() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestOfflineSignInWithoutUsername(t *testing.T) {
	t.Parallel()

	a := newActor(t, nil)
	_, err := a.AttemptsTo(context.Background(),
		SignIn.MustBind(),
		AddNote.MustBind("x"),
	)
	if err != nil {
		t.Fatalf("AttemptsTo() error = %v", err)
	}
	count, err := actorx.AsksFor[int](context.Background(), a, NoteCount.MustBind())
	if err != nil || count != 1 {
		t.Fatalf("NoteCount = %d, %v, want 1", count, err)
	}
}
