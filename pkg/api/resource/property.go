package resource

import "github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"

type PropertyResource struct {
	Name    string                       `json:"name"`
	Value   interface{}                  `json:"value"`
	Options agentcontrol.PropertyOptions `json:"options"`
}

type PropertyListResource struct {
	Members []*PropertyResource `json:"members"`
}

func NewProperty(p *agentcontrol.Property) *PropertyResource {
	return &PropertyResource{
		Name:    p.Name,
		Value:   p.Get(),
		Options: p.Options,
	}
}

func NewPropertyList(props []agentcontrol.Property) (out *PropertyListResource) {
	out = &PropertyListResource{
		Members: make([]*PropertyResource, 0, len(props)),
	}

	for i := range props {
		out.Members = append(out.Members, NewProperty(&props[i]))
	}

	return // out
}
