// Package notes is a small task vocabulary for a note-taking application,
// with one perspective that works purely in memory and one that drives the
// application's REST API.
package notes

import (
	"errors"

	taskx "github.com/tanpawarit/screenplay/screenplay/task"
)

var (
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Items kept in the actor's memory.
const (
	itemUser  = "user"
	itemToken = "token"
	itemNotes = "notes"
)

var (
	SignIn = taskx.MustNew("signIn", []string{"username"}, func(n *taskx.Nest) {
		n.Task("withPassword", []string{"password"}, nil)
	})
	AddNote        = taskx.MustNew("addNote", []string{"text"}, nil)
	NoteCount      = taskx.MustNew("noteCount", nil, nil)
	SummariseNotes = taskx.MustNew("summariseNotes", nil, nil)
)
