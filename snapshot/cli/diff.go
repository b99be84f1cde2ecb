package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

type diffCommand struct {
	context int
}

func (c *diffCommand) register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "derives NEW's snapshot from OLD's and reports what was reused",
		Args:  exactArgs(2, "diff OLD NEW"),
	}
	cmd.Flags().IntVar(&c.context, "context", 3, "lines of context in the unified diff")
	return cmd
}

func (c *diffCommand) run(env *Env, cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]
	prev, err := env.snapshot(oldName, nil)
	if err != nil {
		return err
	}
	next, err := env.snapshot(newName, prev)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	hashers := env.Snapshotter.Hashers()
	fmt.Fprintf(out, "old: %s\n", hashing.DigestToStr(hashing.DigestOf(hashers, prev.AppendTo)))
	fmt.Fprintf(out, "new: %s\n", hashing.DigestToStr(hashing.DigestOf(hashers, next.AppendTo)))
	if next == prev {
		fmt.Fprintln(out, "unchanged: previous snapshot reused")
		return nil
	}

	reused, total := countReused(prev, next)
	fmt.Fprintf(out, "reused %d of %d nodes\n", reused, total)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(snapshot.Render(prev)),
		B:        difflib.SplitLines(snapshot.Render(next)),
		FromFile: oldName,
		ToFile:   newName,
		Context:  c.context,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(out, diff)
	return nil
}

// countReused counts the nodes of next that are instances taken over from
// prev. A reused subtree counts as a whole.
func countReused(prev, next snapshot.Node) (reused, total int) {
	old := make(map[snapshot.Node]bool)
	snapshot.Walk(prev, func(n snapshot.Node) { old[n] = true })
	snapshot.Walk(next, func(n snapshot.Node) {
		total++
		if old[n] {
			reused++
		}
	})
	return reused, total
}
