package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rubicr/thambi/internal/rephrase"
)

func newRephraseCmd(flags *globalFlags) *cobra.Command {
	var (
		contextFile string
		markdown    bool
	)

	cmd := &cobra.Command{
		Use:   "rephrase <text>",
		Short: "Rephrase text once and print the result",
		Long: `Rephrase sends a single request through the same pipeline as POST /rephrase
and prints the HTML answer, or the normalized Markdown with --markdown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("text cannot be empty")
			}

			var (
				webpage string
				extra   []rephrase.Option
			)
			if contextFile != "" {
				data, err := os.ReadFile(contextFile)
				if err != nil {
					return fmt.Errorf("context: read %s: %w", contextFile, err)
				}
				webpage = string(data)
				// Saved pages are reduced to their main content; other files are sent as-is.
				switch strings.ToLower(filepath.Ext(contextFile)) {
				case ".html", ".htm":
					extra = append(extra, rephrase.WithContextCleaner(true))
				}
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			svc := buildService(cfg, flags.useMock, newLogger(cfg), extra...)

			req := rephrase.Request{Text: text, WebpageContent: webpage}
			var out string
			if markdown {
				out, err = svc.Markdown(cmd.Context(), req)
			} else {
				var res rephrase.Result
				res, err = svc.Process(cmd.Context(), req)
				out = res.Text
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&contextFile, "context-file", "", "file with webpage content; .html/.htm files are reduced to their main content")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print normalized Markdown instead of HTML")
	return cmd
}
