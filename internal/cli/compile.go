package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"astuart.co/goswipe"
)

type compileOptions struct {
	pretty bool
	strict bool
}

type fileReport struct {
	File string `json:"file"`
	goswipe.PageReport
}

func newCompileCmd(root *rootOptions) *cobra.Command {
	opts := compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile <file>... | -",
		Short: "Compile every directive in the given HTML files and print the configurations as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, root, opts, args)
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	fs.BoolVar(&opts.strict, "strict", false, "fail when any directive has errors or warnings")
	return cmd
}

func runCompile(cmd *cobra.Command, root *rootOptions, opts compileOptions, files []string) error {
	copts := root.cfg.CompilerOptions()
	reports := make([]fileReport, 0, len(files))
	var problems int
	for _, f := range files {
		b, err := readInput(f)
		if err != nil {
			return fmt.Errorf("read %q: %w", f, err)
		}
		page, err := goswipe.Compile(bytes.NewReader(b), copts)
		if err != nil {
			return fmt.Errorf("parse %q: %w", f, err)
		}
		rep := page.Report()
		page.Destroy()
		problems += len(rep.Errors) + len(rep.Warnings)
		reports = append(reports, fileReport{File: f, PageReport: rep})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(reports); err != nil {
		return err
	}
	if opts.strict && problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}
