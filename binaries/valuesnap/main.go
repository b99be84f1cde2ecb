package main

// valuesnap snapshots JSON and YAML documents and prints their cache
// digests, snapshot trees and incremental diffs.

import (
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	scooterrors "github.com/Anima18/gradle/common/errors"
	"github.com/Anima18/gradle/common/log/hooks"
	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/config/snapconfig"
	"github.com/Anima18/gradle/snapshot/cli"
)

func main() {
	log.AddHook(hooks.NewContextHook())

	inj := &injector{}
	cmd := cli.MakeCLI(inj)
	err := cmd.Execute()
	if inj.showStats && inj.stat != nil {
		os.Stderr.Write(inj.stat.Render(true))
		os.Stderr.WriteString("\n")
	}
	if err != nil {
		log.Error(err)
		os.Exit(int(scooterrors.ExitCodeOf(err)))
	}
}

type injector struct {
	configFlag string
	format     string
	logLevel   string
	showStats  bool

	stat stats.StatsReceiver
}

func (i *injector) RegisterFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&i.configFlag, "config", "", "config file name under ./config, or literal JSON config")
	flags.StringVar(&i.format, "format", "", "input format (json|yaml), by file extension if empty")
	flags.StringVar(&i.logLevel, "log_level", "info", "Log everything at this level and above (error|info|debug)")
	flags.BoolVar(&i.showStats, "stats", false, "print collected stats to stderr on exit")
}

func (i *injector) Inject() (*cli.Env, error) {
	level, err := log.ParseLevel(i.logLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	configText, err := snapconfig.GetConfigText(i.configFlag, ioutil.ReadFile)
	if err != nil {
		return nil, err
	}
	config, err := snapconfig.Parse(configText)
	if err != nil {
		return nil, err
	}

	i.stat = stats.NilStatsReceiver()
	if i.showStats {
		i.stat = stats.DefaultStatsReceiver()
	}
	snapshotter, err := config.NewSnapshotter(i.stat)
	if err != nil {
		return nil, err
	}
	return &cli.Env{
		Snapshotter: snapshotter,
		Stat:        config.Stats(i.stat),
		ReadFile:    ioutil.ReadFile,
		Format:      i.format,
	}, nil
}
