package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"astuart.co/goswipe"
)

type renderOptions struct {
	out string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <file> | -",
		Short: "Write the HTML back with each compiled configuration embedded as " + goswipe.OptionsAttr,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts renderOptions, file string) error {
	b, err := readInput(file)
	if err != nil {
		return fmt.Errorf("read %q: %w", file, err)
	}
	page, err := goswipe.Compile(bytes.NewReader(b), root.cfg.CompilerOptions())
	if err != nil {
		return fmt.Errorf("parse %q: %w", file, err)
	}
	defer page.Destroy()

	for _, e := range page.Errors {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
	}

	var w io.Writer = cmd.OutOrStdout()
	if out := strings.TrimSpace(opts.out); out != "" {
		f, err := os.Create(out) // #nosec G304 -- output path is provided by the user.
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return page.Render(w)
}
