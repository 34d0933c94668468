// This file is part of Retroprof.
//
// Retroprof is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroprof is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroprof.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jetsetilly/retroprof/config"
	"github.com/jetsetilly/retroprof/logger"
	"github.com/jetsetilly/retroprof/prefs"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/statsview"
	"github.com/jetsetilly/retroprof/version"
)

// application is the state shared by all commands.
type application struct {
	in inputs

	prefsFile string
	prefsSet  string
	logLevel  string
	statsview bool

	prefs *config.Preferences
	echo  *zap.Logger

	stopStatsview func()
}

func newRootCommand() *cobra.Command {
	app := &application{}

	root := &cobra.Command{
		Use:           "retroprof",
		Short:         "Flame graphs for profiles of retro hardware programs",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			app.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.in.symbols, "symbols", "", "symbol listing file")
	flags.StringVar(&app.in.samples, "samples", "", "samples file")
	flags.StringVar(&app.in.format, "format", string(profiling.FormatAuto), "samples format (auto, stacks, sizes, pprof)")
	flags.StringVar(&app.in.rules, "rules", "", "YAML file of category rules (overrides the flame.rules preference)")
	flags.StringVar(&app.prefsFile, "prefs", "", "preferences file (default is in the user config directory)")
	flags.StringVar(&app.prefsSet, "set", "", "override preferences. eg. \"flame.focuscolor::rgb(255,0,0); view.width::800\"")
	flags.StringVar(&app.logLevel, "log-level", "", "echo log to stderr at level (debug, info, warn, error)")
	flags.BoolVar(&app.statsview, "statsview", false, "run the runtime statistics viewer (if available)")

	root.AddCommand(
		app.viewCommand(),
		app.summaryCommand(),
		app.mcpCommand(),
		app.memvizCommand(),
	)

	return root
}

// setup is run before every command.
func (app *application) setup(cmd *cobra.Command) error {
	if err := validFormat(app.in.format); err != nil {
		return err
	}

	if app.prefsSet != "" {
		prefs.PushCommandLineStack(app.prefsSet)
	}

	var err error
	app.prefs, err = config.NewPreferences(app.prefsFile)
	if err != nil {
		return err
	}

	if app.prefsSet != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "retroprof", "unused preferences: %s", unused)
		}
	}

	level := app.logLevel
	if level == "" && app.prefs.LogEcho.Get().(bool) {
		level = app.prefs.LogLevel.Get().(string)
	}
	if level != "" {
		app.echo, err = logger.NewZap(level)
		if err != nil {
			return err
		}
		logger.SetEcho(app.echo)
	}

	if app.in.rules == "" {
		app.in.rules = app.prefs.Rules.Get().(string)
	}

	if app.statsview {
		if statsview.Available() {
			app.stopStatsview = statsview.Launch(cmd.ErrOrStderr())
		} else {
			logger.Log(logger.Allow, "retroprof", "statsview not available in this build")
		}
	}

	logger.Logf(logger.Allow, "retroprof", "%s", version.String())

	return nil
}

// teardown is run after every command that succeeds.
func (app *application) teardown() {
	if app.stopStatsview != nil {
		app.stopStatsview()
		app.stopStatsview = nil
	}
	if app.echo != nil {
		logger.SetEcho(nil)
		_ = app.echo.Sync()
		app.echo = nil
	}
}

// the SDL window must be serviced by the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "* error: %v\n", err)
		os.Exit(10)
	}
}
