package valueio

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Anima18/gradle/snapshot"
)

const (
	maxAliasDepth = 64

	// Alias expansion may grow a document to nodeBudgetRatio times its own
	// node count, and never below minNodeBudget.
	nodeBudgetRatio = 10
	minNodeBudget   = 100000
)

func decodeYAML(data []byte) (interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	// An empty document leaves the node zeroed.
	if doc.Kind == 0 {
		return nil, nil
	}
	d := &yamlDecoder{remaining: nodeBudgetRatio * countNodes(&doc)}
	if d.remaining < minNodeBudget {
		d.remaining = minNodeBudget
	}
	v, err := d.fromNode(&doc, 0)
	if err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	return v, nil
}

// countNodes counts the nodes written in the document, not following aliases.
func countNodes(n *yaml.Node) int {
	count := 1
	for _, c := range n.Content {
		count += countNodes(c)
	}
	return count
}

// yamlDecoder converts a node tree into raw values. remaining is the number
// of nodes it may still produce, so that nested aliases cannot expand a small
// document without bound.
type yamlDecoder struct {
	remaining int
}

func (d *yamlDecoder) fromNode(n *yaml.Node, depth int) (interface{}, error) {
	d.remaining--
	if d.remaining < 0 {
		return nil, fmt.Errorf("line %d: aliases expand the document too far", n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.fromNode(n.Content[0], depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return nil, fmt.Errorf("line %d: aliases nested too deeply", n.Line)
		}
		return d.fromNode(n.Alias, depth+1)
	case yaml.SequenceNode:
		elems := make([]interface{}, len(n.Content))
		for i, c := range n.Content {
			e, err := d.fromNode(c, depth)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return elems, nil
	case yaml.MappingNode:
		if n.ShortTag() == "!!set" {
			return d.setFromNode(n, depth)
		}
		return d.pairsFromNode(n, depth)
	case yaml.ScalarNode:
		return scalarFromNode(n)
	}
	return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

func (d *yamlDecoder) setFromNode(n *yaml.Node, depth int) (interface{}, error) {
	elems := make(snapshot.Unordered, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		e, err := d.fromNode(n.Content[i], depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// pairsFromNode keeps document order. Merge keys (<<) splice in the pairs of
// the merged mappings that the mapping does not define itself, at the
// position of the merge key. When several merged mappings define a key, the
// first one listed wins.
func (d *yamlDecoder) pairsFromNode(n *yaml.Node, depth int) (interface{}, error) {
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode || k.ShortTag() == "!!merge" {
			continue
		}
		key, err := scalarFromNode(k)
		if err != nil {
			return nil, err
		}
		if id, ok := keyID(key); ok {
			seen[id] = true
		}
	}

	pairs := make(snapshot.Pairs, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merged, err := d.mergedPairs(v, depth)
			if err != nil {
				return nil, err
			}
			for _, p := range merged {
				if id, ok := keyID(p.Key); ok {
					if seen[id] {
						continue
					}
					seen[id] = true
				}
				pairs = append(pairs, p)
			}
			continue
		}
		key, err := d.fromNode(k, depth)
		if err != nil {
			return nil, err
		}
		value, err := d.fromNode(v, depth)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, snapshot.Pair{Key: key, Value: value})
	}
	return pairs, nil
}

func (d *yamlDecoder) mergedPairs(v *yaml.Node, depth int) (snapshot.Pairs, error) {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	var out snapshot.Pairs
	for _, src := range sources {
		m, err := d.fromNode(src, depth)
		if err != nil {
			return nil, err
		}
		pairs, ok := m.(snapshot.Pairs)
		if !ok {
			return nil, fmt.Errorf("line %d: merge value is not a mapping", src.Line)
		}
		out = append(out, pairs...)
	}
	return out, nil
}

// keyID identifies a scalar mapping key by type and value. Collection keys
// have no id and are never treated as duplicates.
func keyID(key interface{}) (string, bool) {
	switch k := key.(type) {
	case nil:
		return "null", true
	case []byte:
		return "bytes:" + string(k), true
	case string, bool, int64, uint64, float64:
		return fmt.Sprintf("%T:%v", k, k), true
	}
	return "", false
}

func scalarFromNode(n *yaml.Node) (interface{}, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, errors.Wrapf(err, "line %d", n.Line)
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		err := n.Decode(&u)
		return u, errors.Wrapf(err, "line %d", n.Line)
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, errors.Wrapf(err, "line %d", n.Line)
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return b, nil
	default:
		return n.Value, nil
	}
}
