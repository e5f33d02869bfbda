package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"faraid-engine/internal/model"
)

// errFailed signals a FAILURE outcome whose messages were already printed.
var errFailed = errors.New("calculation failed")

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func newCalculateCmd(opts *rootOptions) *cobra.Command {
	var heirFlags []string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Distribute an estate among heirs",
		Example: `  faraid calculate --heir husband --heir daughter=2
  faraid calculate --heir wife --heir son=2 --heir daughter=1 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			heirs, err := parseHeirs(heirFlags)
			if err != nil {
				return err
			}
			eng, cleanup, err := opts.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			resp := eng.ProcessInheritance(&model.InheritanceRequest{Heirs: heirs})
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, resp, resp.CalculationMetadata.CalculationOutcome)
			}

			printMessages(out, resp.CalculationResult.Messages)
			if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
				return errFailed
			}
			printShares(out, resp.CalculationResult)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&heirFlags, "heir", nil, "heir as relation[=count], repeatable")
	_ = cmd.MarkFlagRequired("heir")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var heirFlags []string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an heir set without calculating",
		RunE: func(cmd *cobra.Command, _ []string) error {
			heirs, err := parseHeirs(heirFlags)
			if err != nil {
				return err
			}
			eng, cleanup, err := opts.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			resp := eng.ValidateInheritance(&model.InheritanceRequest{Heirs: heirs})
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, resp, resp.CalculationMetadata.CalculationOutcome)
			}

			printMessages(out, resp.CalculationResult.Messages)
			if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
				return errFailed
			}
			fmt.Fprintln(out, "heirs are valid")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&heirFlags, "heir", nil, "heir as relation[=count], repeatable")
	_ = cmd.MarkFlagRequired("heir")
	return cmd
}

func printShares(w io.Writer, res model.InheritanceResult) {
	rows := make([][]string, 0, len(res.Results))
	for _, r := range res.Results {
		rows = append(rows, []string{
			r.Heir,
			strconv.Itoa(r.Count),
			r.Share,
			r.PerPersonShare,
			strconv.FormatFloat(r.Percentage, 'f', 2, 64),
			r.Note,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("HEIR", "COUNT", "SHARE", "EACH", "%", "NOTE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}

func printMessages(w io.Writer, msgs []model.CalculationMessage) {
	for _, m := range msgs {
		style := warningStyle
		if m.Level == model.LevelCritical {
			style = errorStyle
		}
		line := fmt.Sprintf("%s %s: %s", m.Level, m.Code, m.Message)
		if m.HeirID != "" {
			line += " (heir " + m.HeirID + ")"
		}
		fmt.Fprintln(w, style.Render(line))
	}
}

func printJSON(w io.Writer, v any, outcome string) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(body))
	if outcome != model.OutcomeSuccess {
		return errFailed
	}
	return nil
}
