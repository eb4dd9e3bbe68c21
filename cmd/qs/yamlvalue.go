package main

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"go.codecgarden.dev/qs"
)

// parseValue parses input (JSON, or the YAML superset of it) into the Value
// shape Encode expects: *qs.OrderedMap, []any, and scalars, preserving
// object key order from the source text the way [qs.Decode] does for query
// strings. JSON is valid YAML, so the same AST-walking approach the
// schema-generation tool in this module family uses for YAML input also
// covers plain JSON fixtures.
func parseValue(input string) (any, error) {
	file, err := parser.ParseBytes([]byte(input), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}

	return nodeToValue(file.Docs[0].Body)
}

func nodeToValue(node ast.Node) (any, error) {
	node = unwrapValueNode(node)

	switch n := node.(type) {
	case *ast.MappingNode:
		return mappingToValue(n.Values)
	case *ast.MappingValueNode:
		return mappingToValue([]*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		seq := make([]any, 0, len(n.Values))

		for _, item := range n.Values {
			v, err := nodeToValue(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, v)
		}

		return seq, nil
	case *ast.NullNode:
		return nil, nil
	case *ast.BoolNode:
		return n.Value, nil
	case *ast.IntegerNode:
		switch val := n.Value.(type) {
		case int64:
			return val, nil
		case uint64:
			return int64(val), nil
		default:
			return val, nil
		}
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.LiteralNode:
		return n.Value.Value, nil
	case nil:
		return nil, nil
	default:
		// Anchors/aliases and other exotic node kinds render as their
		// source text, matching the loose "domain-specific opaque value"
		// allowance for scalars this codec doesn't otherwise recognize.
		s := n.String()

		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}

		return s, nil
	}
}

func mappingToValue(values []*ast.MappingValueNode) (any, error) {
	m := qs.NewOrderedMap()

	for _, mv := range values {
		keyNode, ok := mv.Key.(ast.Node)
		if !ok {
			return nil, fmt.Errorf("mapping key is not a scalar node: %v", mv.Key)
		}

		key, err := nodeToValue(keyNode)
		if err != nil {
			return nil, err
		}

		keyStr, ok := key.(string)
		if !ok {
			keyStr = fmt.Sprint(key)
		}

		val, err := nodeToValue(mv.Value)
		if err != nil {
			return nil, err
		}

		m.Set(keyStr, val)
	}

	return m, nil
}

func unwrapValueNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}
