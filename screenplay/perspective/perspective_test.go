package perspective

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
	taskx "github.com/tanpawarit/screenplay/screenplay/task"
)

var (
	openDoor = taskx.MustNew("openDoor", []string{"door"}, func(n *taskx.Nest) {
		n.Task("quietly", nil, nil)
	})
	closeDoor = taskx.MustNew("closeDoor", []string{"door"}, nil)
)

func TestResolveCallsHandlerWithParams(t *testing.T) {
	t.Parallel()

	var gotParams contractx.Params
	p, err := New("ui", func(r *Registry) {
		r.Handle(openDoor.Child("quietly"), func(params contractx.Params) contractx.Interaction {
			gotParams = params
			return func(ctx context.Context, scene contractx.Scene) (any, error) {
				return "opened", nil
			}
		})
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	interaction, err := p.Resolve(openDoor.MustBind("front").MustThen("quietly"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(gotParams.Map(), map[string]any{"door": "front"}) {
		t.Fatalf("handler params = %v", gotParams)
	}
	out, err := interaction(context.Background(), contractx.Scene{})
	if err != nil || out != "opened" {
		t.Fatalf("interaction() = %v, %v", out, err)
	}
}

func TestResolveInteractionUnchanged(t *testing.T) {
	t.Parallel()

	p := MustNew("ui", nil)
	called := false
	var in contractx.Interaction = func(ctx context.Context, scene contractx.Scene) (any, error) {
		called = true
		return nil, nil
	}

	out, err := p.Resolve(in)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, err := out(context.Background(), contractx.Scene{}); err != nil {
		t.Fatalf("interaction() error = %v", err)
	}
	if !called {
		t.Fatal("expected the original interaction to be returned")
	}
}

func TestResolveUnknownTaskListsRegisteredIDs(t *testing.T) {
	t.Parallel()

	noop := func(contractx.Params) contractx.Interaction { return nil }
	p := MustNew("api", func(r *Registry) {
		r.Handle(openDoor, noop)
		r.Handle(closeDoor, noop)
	})

	_, err := p.Resolve(openDoor.MustBind("front").MustThen("quietly"))
	if !errors.Is(err, contractx.ErrUnknownTask) {
		t.Fatalf("Resolve() error = %v, want ErrUnknownTask", err)
	}

	var unknown *UnknownTaskError
	if !errors.As(err, &unknown) {
		t.Fatalf("Resolve() error type = %T", err)
	}
	if unknown.TaskID != "openDoor.quietly" || unknown.Perspective != "api" {
		t.Fatalf("unexpected error fields: %+v", unknown)
	}
	if !reflect.DeepEqual(unknown.Registered, []string{"closeDoor", "openDoor"}) {
		t.Fatalf("Registered = %v", unknown.Registered)
	}
	for _, want := range []string{"openDoor.quietly", "api", "closeDoor", "openDoor"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error message %q does not mention %q", err.Error(), want)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	p := MustNew("api", func(r *Registry) {
		r.Handle(closeDoor, func(contractx.Params) contractx.Interaction { return nil })
	})

	if _, ok := p.Lookup("closeDoor"); !ok {
		t.Fatal("Lookup(closeDoor) not found")
	}
	if _, ok := p.Lookup("openDoor"); ok {
		t.Fatal("Lookup(openDoor) must not be found")
	}
	if p.Name() != "api" {
		t.Fatalf("Name() = %q", p.Name())
	}
}

func TestNewRejectsBadRegistrations(t *testing.T) {
	t.Parallel()

	noop := func(contractx.Params) contractx.Interaction { return nil }

	_, err := New("api", func(r *Registry) {
		r.Handle(openDoor, noop)
		r.Handle(openDoor, noop)
	})
	if !errors.Is(err, contractx.ErrDuplicateHandler) {
		t.Fatalf("New() error = %v, want ErrDuplicateHandler", err)
	}

	_, err = New("api", func(r *Registry) {
		r.Handle(openDoor, nil)
	})
	if !errors.Is(err, contractx.ErrInvalidTask) {
		t.Fatalf("New() error = %v, want ErrInvalidTask", err)
	}

	_, err = New("api", func(r *Registry) {
		r.Handle(nil, noop)
	})
	if !errors.Is(err, contractx.ErrInvalidTask) {
		t.Fatalf("New() error = %v, want ErrInvalidTask", err)
	}
}
