package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Operator string      `json:"operator,omitempty"`
	Value    *int        `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *IntegerLiteral) MarshalJSON() ([]byte, error) { return json.Marshal(toJSON(n)) }
func (n *UnaryOp) MarshalJSON() ([]byte, error)        { return json.Marshal(toJSON(n)) }
func (n *BinaryOp) MarshalJSON() ([]byte, error)       { return json.Marshal(toJSON(n)) }
func (n *Conditional) MarshalJSON() ([]byte, error)    { return json.Marshal(toJSON(n)) }

func toJSON(e Expression) *jsonNode {
	jn := &jsonNode{
		Kind: e.Kind().String(),
	}

	switch n := e.(type) {
	case *IntegerLiteral:
		value := n.Value
		jn.Value = &value
	case *UnaryOp:
		jn.Operator = n.Operator.String()
	case *BinaryOp:
		jn.Operator = n.Operator.String()
	}

	children := Children(e)
	if len(children) > 0 {
		jn.Children = make([]*jsonNode, len(children))
		for i, child := range children {
			jn.Children[i] = toJSON(child)
		}
	}

	return jn
}
