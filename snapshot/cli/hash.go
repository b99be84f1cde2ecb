package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	scooterrors "github.com/Anima18/gradle/common/errors"
	"github.com/Anima18/gradle/hashing"
)

type hashCommand struct{}

func (c *hashCommand) register() *cobra.Command {
	return &cobra.Command{
		Use:   "hash FILE...",
		Short: "prints the cache digest of each file's value",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return scooterrors.Errorf(scooterrors.UsageFailureExitCode, "Usage: hash FILE...")
			}
			return nil
		},
	}
}

func (c *hashCommand) run(env *Env, cmd *cobra.Command, args []string) error {
	for _, name := range args {
		node, err := env.snapshot(name, nil)
		if err != nil {
			return err
		}
		digest := hashing.DigestOf(env.Snapshotter.Hashers(), node.AppendTo)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hashing.DigestToStr(digest), name)
	}
	return nil
}
