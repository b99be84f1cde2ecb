package fingerprint

import (
	"fmt"

	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

// Input is one declared input of a task: a name unique within the task and
// the raw value it currently has.
type Input struct {
	Name  string
	Value interface{}
}

// NamedNode is an input name with the snapshot taken of its value.
type NamedNode struct {
	Name string
	Node snapshot.Node
}

const taskInputsToken = "TaskInputs"

// Key writes the named nodes, in the given order, into a fresh hasher from f.
// It returns the digest and the number of bytes hashed.
func Key(f hashing.Factory, nodes []NamedNode) (hashing.HashCode, int64) {
	return hashing.Sum(f, func(h hashing.Hasher) {
		h.PutToken(taskInputsToken)
		h.PutInt(int64(len(nodes)))
		for _, n := range nodes {
			h.PutToken(n.Name)
			n.Node.AppendTo(h)
		}
	})
}

func validateInputs(inputs []Input) error {
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		if in.Name == "" {
			return fmt.Errorf("Input %d has no name", i)
		}
		if seen[in.Name] {
			return fmt.Errorf("Input %q is declared twice", in.Name)
		}
		seen[in.Name] = true
	}
	return nil
}
