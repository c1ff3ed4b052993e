// Package task builds reusable, composable action templates.
//
// A Template is bound with positional values to produce a contract.Action.
// Templates may declare nested templates; every action produced by the parent
// carries an accessor per nested template, so deep task chains can be built
// and described without touching a perspective:
//
//	openDoor := task.MustNew("openDoor", []string{"door"}, func(n *task.Nest) {
//		n.Task("quietly", nil, nil)
//	})
//	action := openDoor.MustBind("front").MustThen("quietly")
//	// action.ID() == "openDoor.quietly"
//	// action.Description() == "Open door 'front' quietly"
package task

import (
	"fmt"
	"strings"

	"github.com/tanpawarit/screenplay/pkg/casing"
	contractx "github.com/tanpawarit/screenplay/screenplay/contract"
)

// Separator joins a parent template id and a nested leaf name.
const Separator = "."

// Build registers nested templates on n.
type Build func(n *Nest)

// Template is a reusable action builder. It is not executed itself.
type Template struct {
	id          string
	leaf        string
	argNames    []string
	description string
	children    []*Template
}

// Nest is handed to a Build callback to declare nested templates scoped under
// the parent template.
type Nest struct {
	parent *Template
	err    error
}

// Task declares a nested template called leafID with its own argument names.
func (n *Nest) Task(leafID string, argNames []string, build Build) {
	if n.err != nil {
		return
	}
	if _, exists := n.parent.child(leafID); exists {
		n.err = fmt.Errorf("%w: task %q already declares nested task %q", contractx.ErrInvalidTask, n.parent.id, leafID)
		return
	}
	child, err := define(n.parent.id+Separator, leafID, argNames, build)
	if err != nil {
		n.err = err
		return
	}
	n.parent.children = append(n.parent.children, child)
}

// New defines a root template. build, if not nil, is invoked once to declare
// nested templates.
func New(id string, argNames []string, build Build) (*Template, error) {
	return define("", id, argNames, build)
}

func MustNew(id string, argNames []string, build Build) *Template {
	t, err := New(id, argNames, build)
	if err != nil {
		panic(err)
	}
	return t
}

func define(prefix, leaf string, argNames []string, build Build) (*Template, error) {
	if err := validateLeaf(leaf); err != nil {
		return nil, err
	}
	if err := validateArgNames(prefix+leaf, argNames); err != nil {
		return nil, err
	}

	t := &Template{
		id:          prefix + leaf,
		leaf:        leaf,
		argNames:    append([]string(nil), argNames...),
		description: casing.Casify(leaf),
	}

	if build != nil {
		n := &Nest{parent: t}
		build(n)
		if n.err != nil {
			return nil, n.err
		}
	}
	return t, nil
}

func validateLeaf(leaf string) error {
	if strings.TrimSpace(leaf) == "" {
		return fmt.Errorf("%w: task id is empty", contractx.ErrInvalidTask)
	}
	if strings.Contains(leaf, Separator) {
		return fmt.Errorf("%w: task id %q must not contain %q", contractx.ErrInvalidTask, leaf, Separator)
	}
	return nil
}

func validateArgNames(id string, argNames []string) error {
	seen := make(map[string]struct{}, len(argNames))
	for _, name := range argNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: task %q has an empty argument name", contractx.ErrInvalidTask, id)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: task %q declares argument %q twice", contractx.ErrInvalidTask, id, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// ID is empty for a nil template, so a missing Child fails registration
// instead of panicking.
func (t *Template) ID() string {
	if t == nil {
		return ""
	}
	return t.id
}

func (t *Template) Description() string { return t.description }

func (t *Template) ArgNames() []string {
	return append([]string(nil), t.argNames...)
}

// Children returns the nested templates in declaration order.
func (t *Template) Children() []*Template {
	return append([]*Template(nil), t.children...)
}

// Child returns the nested template called name, or nil.
func (t *Template) Child(name string) *Template {
	child, _ := t.child(name)
	return child
}

func (t *Template) child(name string) (*Template, bool) {
	for _, c := range t.children {
		if c.leaf == name {
			return c, true
		}
	}
	return nil, false
}

// Bind zips values positionally against the argument names and returns the
// resulting action. Fewer values than names bind a prefix.
func (t *Template) Bind(values ...any) (contractx.Action, error) {
	params, err := t.bindParams(values)
	if err != nil {
		return contractx.Action{}, err
	}
	description := describe(t.description, params)
	return t.action(params, description), nil
}

func (t *Template) MustBind(values ...any) contractx.Action {
	a, err := t.Bind(values...)
	if err != nil {
		panic(err)
	}
	return a
}

func (t *Template) bindParams(values []any) (contractx.Params, error) {
	if len(values) > len(t.argNames) {
		return nil, fmt.Errorf("%w: %q takes %d values, got %d", contractx.ErrTooManyValues, t.id, len(t.argNames), len(values))
	}
	params := make(contractx.Params, 0, len(values))
	for i, v := range values {
		params = append(params, contractx.Param{Name: t.argNames[i], Value: v})
	}
	return params, nil
}

// action attaches one accessor per nested template. Each accessor closes over
// the parent's params and description, never over the parent action itself.
func (t *Template) action(params contractx.Params, description string) contractx.Action {
	accessors := make([]contractx.Accessor, 0, len(t.children))
	for _, child := range t.children {
		child := child
		accessors = append(accessors, contractx.NewAccessor(child.id, child.leaf, child.description,
			func(values ...any) (contractx.Action, error) {
				own, err := child.bindParams(values)
				if err != nil {
					return contractx.Action{}, err
				}
				nestedDescription := describe(description+" "+strings.ToLower(child.description), own)
				return child.action(params.Merge(own), nestedDescription), nil
			},
		))
	}
	return contractx.NewAction(t.id, params, description, accessors)
}

func describe(base string, params contractx.Params) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, base)
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("'%v'", p.Value))
	}
	return strings.Join(parts, " ")
}
