package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/Anima18/gradle/snapshot"
)

type dumpCommand struct {
	raw bool
}

func (c *dumpCommand) register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "prints the snapshot tree of a file's value",
		Args:  exactArgs(1, "dump FILE"),
	}
	cmd.Flags().BoolVar(&c.raw, "raw", false, "print the decoded value instead of its snapshot")
	return cmd
}

var spewConfig = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}

func (c *dumpCommand) run(env *Env, cmd *cobra.Command, args []string) error {
	if c.raw {
		value, err := env.load(args[0])
		if err != nil {
			return err
		}
		spewConfig.Fdump(cmd.OutOrStdout(), value)
		return nil
	}
	node, err := env.snapshot(args[0], nil)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), snapshot.Render(node))
	return nil
}
