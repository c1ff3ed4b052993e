package contract

// Param is a single named value bound to a task.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered set of bindings. Names are unique.
type Params []Param

func (p Params) Get(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for _, param := range p {
		names = append(names, param.Name)
	}
	return names
}

func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p))
	for _, param := range p {
		out[param.Name] = param.Value
	}
	return out
}

// Merge returns a copy of p overlaid by over. A name already in p keeps its
// position with the new value; names only in over are appended in order.
func (p Params) Merge(over Params) Params {
	out := make(Params, len(p), len(p)+len(over))
	copy(out, p)

	for _, param := range over {
		replaced := false
		for i := range out {
			if out[i].Name == param.Name {
				out[i].Value = param.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, param)
		}
	}
	return out
}

func (p Params) clone() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}
