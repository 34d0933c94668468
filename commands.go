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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jetsetilly/retroprof/curated"
	"github.com/jetsetilly/retroprof/gui/sdlflame"
	"github.com/jetsetilly/retroprof/logger"
	"github.com/jetsetilly/retroprof/mcpserve"
	"github.com/jetsetilly/retroprof/prefs"
	"github.com/jetsetilly/retroprof/profiling"
	"github.com/jetsetilly/retroprof/resources"
)

func (app *application) viewCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the profile as a flame graph",
		Long: `Show the profile as a flame graph.

Hover over a function to see its weight. The mouse wheel zooms about the
pointer and dragging pans. Clicking a function focuses it. Typing searches for
functions by name and TAB moves to the next match. ESC clears the focus and
right click or HOME resets the zoom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.view(cmd.Context(), watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload the profile when the input files change")

	return cmd
}

func (app *application) view(ctx context.Context, watch bool) error {
	t, err := app.in.load()
	if err != nil {
		return err
	}

	layout, err := app.in.layout()
	if err != nil {
		return err
	}

	v, err := sdlflame.NewView(sdlflame.Config{
		Width:      app.prefs.Width.Get().(int),
		Height:     app.prefs.Height.Get().(int),
		FocusColor: app.prefs.FocusColor.Get().(string),
		Layout:     layout,
	})
	if err != nil {
		return err
	}
	defer v.Destroy()

	// changes to the focus colour preference are seen immediately
	app.prefs.FocusColor.SetHookPost(func(value prefs.Value) error {
		v.Renderer().SetFocusColor(value.(string))
		return nil
	})
	defer app.prefs.FocusColor.SetHookPost(nil)

	v.SetName(app.in.name())
	v.Load(t)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	if watch {
		err = app.in.watch(ctx, v.Post)
		if err != nil {
			return err
		}
	}

	return v.Run(ctx)
}

func (app *application) summaryCommand() *cobra.Command {
	var depth int
	var top int
	var check bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the call tree and the functions with the greatest weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := app.in.load()
			if err != nil {
				return err
			}
			if check {
				if err := t.Check(); err != nil {
					return err
				}
			}
			summarise(cmd.OutOrStdout(), app.in.name(), t, depth, top)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 5, "deepest level of the call tree to print. -1 for the entire tree")
	cmd.Flags().IntVar(&top, "top", 10, "number of functions to list")
	cmd.Flags().BoolVar(&check, "check", false, "check the consistency of the call tree weights")

	return cmd
}

// summarise writes the total weight, the call tree and the top functions.
func summarise(w io.Writer, name string, t *profiling.Tree, depth int, top int) {
	fmt.Fprintf(w, "%s: total weight %d, %d nodes, depth %d\n\n", name, t.Total(), len(t.Nodes), t.MaxDepth())

	t.Dump(w, depth)

	fns := t.Functions()
	if top >= 0 && top < len(fns) {
		fns = fns[:top]
	}
	if len(fns) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%8s %7s %8s %7s  %s\n", "self", "", "total", "", "function")
	for _, fs := range fns {
		fmt.Fprintf(w, "%8d %6.2f%% %8d %6.2f%%  %s\n",
			fs.Self, fs.SelfPercent(t.Total()),
			fs.Total, fs.TotalPercent(t.Total()),
			functionName(fs))
	}
}

func functionName(fs profiling.FunctionStats) string {
	if fs.Symbol.File == "" {
		return fs.Symbol.Name
	}
	return fmt.Sprintf("%s (%s:%d)", fs.Symbol.Name, fs.Symbol.File, fs.Symbol.Line)
}

func (app *application) mcpCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Answer questions about the profile with an MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := app.in.load()
			if err != nil {
				return err
			}

			layout, err := app.in.layout()
			if err != nil {
				return err
			}

			srv := mcpserve.New(mcpserve.Profile{Name: app.in.name(), Tree: t}, layout)

			if watch {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				err = app.in.watch(ctx, func(t *profiling.Tree) {
					srv.Set(mcpserve.Profile{Name: app.in.name(), Tree: t})
				})
				if err != nil {
					return err
				}
			}

			return srv.ServeStdio()
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload the profile when the input files change")

	return cmd
}

func (app *application) memvizCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "memviz",
		Short: "Write the call tree as a graphviz file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := app.in.load()
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("%s.dot", resources.UniqueFilename("memviz", app.in.samples))
			}

			f, err := os.Create(output)
			if err != nil {
				return curated.Errorf("memviz: %v", err)
			}

			t.Memviz(f)

			if err := f.Close(); err != nil {
				return curated.Errorf("memviz: %v", err)
			}

			logger.Logf(logger.Allow, "memviz", "written to %s", output)
			fmt.Fprintln(cmd.OutOrStdout(), output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	return cmd
}
