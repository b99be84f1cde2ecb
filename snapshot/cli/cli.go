package cli

// package cli implements the valuesnap CLI, which snapshots JSON and YAML
// documents and reports their cache digests and differences.
//
// It follows the injector pattern so that main owns process setup:
//
// main.go defines its own impl of Injector and constructs it.
//
// main.go calls MakeCLI with the injector, which registers its flags on the
// root command and gets back the root *cobra.Command.
//
// cobra parses the command-line flags and calls the subcommand's RunE, which
// is a wrapper defined in MakeCLI.
//
// the wrapper calls Injector.Inject() to build an Env (snapshotter, stats,
// file access, format), then calls the subcommand's run() with the Env, the cobra
// command and the remaining args.
import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	scooterrors "github.com/Anima18/gradle/common/errors"
	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/snapshot"
	"github.com/Anima18/gradle/valueio"
)

// Env is what subcommands run against.
type Env struct {
	Snapshotter *snapshot.Snapshotter

	// Stat receives the stats of commands that build their own components,
	// such as the fingerprinter of task. Nil records nothing.
	Stat stats.StatsReceiver

	// ReadFile loads the named input.
	ReadFile func(name string) ([]byte, error)

	// Format forces a valueio format. Empty picks one per file extension.
	Format string
}

type Injector interface {
	RegisterFlags(cmd *cobra.Command)
	Inject() (*Env, error)
}

func MakeCLI(injector Injector) *cobra.Command {
	rootCobraCmd := &cobra.Command{
		Use:           "valuesnap",
		Short:         "snapshot structured values and compute their cache digests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	injector.RegisterFlags(rootCobraCmd)

	add := func(subCmd command) {
		cmd := subCmd.register()
		cmd.RunE = func(innerCmd *cobra.Command, args []string) error {
			env, err := injector.Inject()
			if err != nil {
				return scooterrors.NewError(err, scooterrors.ConfigFailureExitCode)
			}
			return subCmd.run(env, innerCmd, args)
		}
		rootCobraCmd.AddCommand(cmd)
	}

	add(&hashCommand{})
	add(&diffCommand{})
	add(&dumpCommand{})
	add(&taskCommand{})

	return rootCobraCmd
}

type command interface {
	register() *cobra.Command
	run(env *Env, cmd *cobra.Command, args []string) error
}

// load reads and decodes one input file.
func (e *Env) load(name string) (interface{}, error) {
	format := e.Format
	if format == "" {
		var err error
		if format, err = valueio.FormatForPath(name); err != nil {
			return nil, scooterrors.NewError(err, scooterrors.UsageFailureExitCode)
		}
	}
	data, err := e.ReadFile(name)
	if err != nil {
		return nil, scooterrors.NewError(err, scooterrors.ReadInputFailureExitCode)
	}
	value, err := valueio.Decode(format, data)
	if err != nil {
		return nil, scooterrors.NewError(errors.Wrap(err, name), scooterrors.DecodeInputFailureExitCode)
	}
	log.Debugf("Decoded %s as %s", name, format)
	return value, nil
}

// snapshot loads name and snapshots it against previous, which may be nil.
func (e *Env) snapshot(name string, previous snapshot.Node) (snapshot.Node, error) {
	value, err := e.load(name)
	if err != nil {
		return nil, err
	}
	node, err := e.Snapshotter.SnapshotFrom(value, previous)
	if err != nil {
		code := scooterrors.ExitCode(scooterrors.GenericFailureExitCode)
		if snapshot.IsUnsnapshottable(err) {
			code = scooterrors.UnsnapshottableExitCode
		}
		return nil, scooterrors.NewError(errors.Wrap(err, name), code)
	}
	return node, nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return scooterrors.NewError(fmt.Errorf("Usage: %s", usage), scooterrors.UsageFailureExitCode)
		}
		return nil
	}
}
