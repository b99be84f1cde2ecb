package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	scooterrors "github.com/Anima18/gradle/common/errors"
	"github.com/Anima18/gradle/fingerprint"
	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

type taskCommand struct {
	id string
}

func (c *taskCommand) register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task FILE...",
		Short: "prints the cache key of a task whose inputs are the given files, in order",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return scooterrors.Errorf(scooterrors.UsageFailureExitCode, "Usage: task FILE...")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&c.id, "id", "task", "task id used in logs")
	return cmd
}

func (c *taskCommand) run(env *Env, cmd *cobra.Command, args []string) error {
	inputs := make([]fingerprint.Input, len(args))
	for i, name := range args {
		value, err := env.load(name)
		if err != nil {
			return err
		}
		inputs[i] = fingerprint.Input{Name: name, Value: value}
	}

	f := fingerprint.NewFingerprinter(env.Snapshotter, nil, env.Stat)
	res, err := f.Fingerprint(c.id, inputs)
	if err != nil {
		code := scooterrors.ExitCode(scooterrors.GenericFailureExitCode)
		if snapshot.IsUnsnapshottable(err) {
			code = scooterrors.UnsnapshottableExitCode
		}
		return scooterrors.NewError(err, code)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hashing.DigestToStr(res.Digest))
	return nil
}
