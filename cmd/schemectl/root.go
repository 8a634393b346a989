package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"eligo/internal/document"
	"eligo/internal/eligibility/models"
	"eligo/internal/eligibility/normalize"
	"eligo/internal/eligibility/service"
	"eligo/internal/eligibility/store"
)

func newRootCmd() *cobra.Command {
	var noColor bool
	root := &cobra.Command{
		Use:           "schemectl",
		Short:         "Inspect and check government scheme files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.AddCommand(newNormalizeCmd(), newKeysCmd(), newCheckCmd())
	return root
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the canonical form of a JSON or YAML scheme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemes, stats, err := readSchemes(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(schemes); err != nil {
				return err
			}
			if stats.DroppedSchemes > 0 || stats.DroppedCriteria > 0 {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(),
					"dropped %d schemes and %d criteria\n", stats.DroppedSchemes, stats.DroppedCriteria)
			}
			return nil
		},
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys FILE",
		Short: "List the criterion keys used by a scheme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemes, _, err := readSchemes(args[0])
			if err != nil {
				return err
			}
			for _, key := range normalize.Keys(schemes) {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	var (
		schemesPath string
		profilePath string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a profile against a scheme file",
		Long: `Evaluate one profile against every scheme of a file.

Examples:
  schemectl check --schemes schemes.yaml --profile me.json
  schemectl check --schemes schemes.json --profile me.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCheck(cmd.Context(), schemesPath, profilePath)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemesPath, "schemes", "", "JSON or YAML scheme file")
	cmd.Flags().StringVar(&profilePath, "profile", "", "JSON profile file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw check result")
	_ = cmd.MarkFlagRequired("schemes")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func readSchemes(path string) ([]models.Scheme, normalize.Stats, error) {
	req, err := readLoadRequest(path)
	if err != nil {
		return nil, normalize.Stats{}, err
	}
	schemes, stats, err := normalize.Schemes(req.Schemes)
	if err != nil {
		return nil, normalize.Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return schemes, stats, nil
}

func readLoadRequest(path string) (service.LoadRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.LoadRequest{}, err
	}
	doc, err := document.Read(path, data)
	if err != nil {
		return service.LoadRequest{}, err
	}
	if doc.Kind == document.KindText {
		return service.LoadRequest{}, fmt.Errorf("%s: only JSON and YAML scheme files can be read offline", path)
	}
	return service.RequestFromDocument("cli", doc)
}

func runCheck(ctx context.Context, schemesPath, profilePath string) (*models.CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := readLoadRequest(schemesPath)
	if err != nil {
		return nil, err
	}
	sub, err := readProfile(profilePath)
	if err != nil {
		return nil, err
	}

	svc, err := service.New(store.New(), service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		return nil, err
	}
	if _, err := svc.Load(ctx, req); err != nil {
		return nil, fmt.Errorf("%s: %w", schemesPath, err)
	}
	return svc.Check(ctx, sub)
}

func readProfile(path string) (models.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Submission{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return models.Submission{}, fmt.Errorf("%s: profile must be a JSON object: %w", path, err)
	}
	return models.SubmissionFromMap(raw), nil
}

func printResult(w io.Writer, result *models.CheckResult) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	for _, s := range result.Eligible {
		green.Fprint(w, "ELIGIBLE     ")
		fmt.Fprintln(w, s.Name)
	}
	for _, s := range result.NotEligible {
		red.Fprint(w, "NOT ELIGIBLE ")
		fmt.Fprintln(w, s.Name)
		for _, reason := range s.Reasons {
			faint.Fprintf(w, "  - %s\n", reason)
		}
	}
	if len(result.MissingQuestions) == 0 {
		return
	}
	fmt.Fprintln(w)
	yellow.Fprintln(w, "More information needed:")
	for _, q := range result.MissingQuestions {
		line := fmt.Sprintf("  %s (%s)", q.Label, q.Key)
		if len(q.Options) > 0 {
			line += fmt.Sprintf(" one of %v", q.Options)
		}
		fmt.Fprintln(w, line)
	}
}
