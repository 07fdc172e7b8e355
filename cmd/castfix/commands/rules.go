package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/castfix/cmd/castfix/opts"
	"github.com/walteh/castfix/pkg/rewrite"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rule pipeline in application order",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, rule := range rewrite.NewEngine().Rules() {
				fmt.Fprintf(out, "%d. %s\n", i+1, color.New(color.Bold).Sprint(rule.Name))
				fmt.Fprintf(out, "   pattern: %s\n", rule.Pattern.String())
				if rule.Precondition != "" {
					fmt.Fprintf(out, "   precondition: contains %q\n", rule.Precondition)
				}
				if rule.Template != "" {
					fmt.Fprintf(out, "   template: %s\n", rule.Template)
				}
			}
			return nil
		},
	}

	return cmd
}
