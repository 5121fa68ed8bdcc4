package pathway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// RawKind is the structural shape of a value in the source document.
type RawKind int

const (
	RawScalar RawKind = iota
	RawObject
	RawArray
)

func (k RawKind) String() string {
	switch k {
	case RawObject:
		return "object"
	case RawArray:
		return "array"
	default:
		return "scalar"
	}
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value RawNode
}

// RawNode is an untyped value from the pathway document. Objects keep their
// member order, which a plain map decode would lose.
type RawNode struct {
	Kind    RawKind
	Members []Member  // RawObject
	Elems   []RawNode // RawArray
	Text    string    // RawScalar: unescaped string or literal source text
	Null    bool      // RawScalar holding JSON null
}

// Object is a convenience constructor used by tests and callers building
// documents in code.
func Object(members ...Member) RawNode {
	return RawNode{Kind: RawObject, Members: members}
}

// Array builds a RawArray node.
func Array(elems ...RawNode) RawNode {
	return RawNode{Kind: RawArray, Elems: elems}
}

// Scalar builds a string scalar.
func Scalar(text string) RawNode {
	return RawNode{Kind: RawScalar, Text: text}
}

// M builds a Member.
func M(key string, value RawNode) Member {
	return Member{Key: key, Value: value}
}

// Parse decodes a pathway document preserving key order.
func Parse(doc []byte) (RawNode, error) {
	if !json.Valid(doc) {
		return RawNode{}, errors.New("parsing pathway document: invalid JSON")
	}
	value, dataType, _, err := jsonparser.Get(doc)
	if err != nil {
		return RawNode{}, fmt.Errorf("parsing pathway document: %w", err)
	}
	node, err := parseValue(value, dataType)
	if err != nil {
		return RawNode{}, fmt.Errorf("parsing pathway document: %w", err)
	}
	return node, nil
}

func parseValue(value []byte, dataType jsonparser.ValueType) (RawNode, error) {
	switch dataType {
	case jsonparser.Object:
		node := RawNode{Kind: RawObject}
		err := jsonparser.ObjectEach(value, func(key, v []byte, dt jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return fmt.Errorf("decoding key %q: %w", key, err)
			}
			child, err := parseValue(v, dt)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			node.Members = append(node.Members, Member{Key: k, Value: child})
			return nil
		})
		return node, err

	case jsonparser.Array:
		node := RawNode{Kind: RawArray}
		var firstErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, _ int, err error) {
			if firstErr != nil {
				return
			}
			if err != nil {
				firstErr = err
				return
			}
			child, err := parseValue(v, dt)
			if err != nil {
				firstErr = err
				return
			}
			node.Elems = append(node.Elems, child)
		})
		if firstErr != nil {
			return node, firstErr
		}
		return node, err

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return RawNode{}, err
		}
		return RawNode{Kind: RawScalar, Text: s}, nil

	case jsonparser.Number, jsonparser.Boolean:
		return RawNode{Kind: RawScalar, Text: string(value)}, nil

	case jsonparser.Null:
		return RawNode{Kind: RawScalar, Null: true}, nil

	default:
		return RawNode{}, fmt.Errorf("unsupported value type %s", dataType)
	}
}
