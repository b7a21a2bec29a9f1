package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unada-gw/trustform/pkg/validator"
)

var errRejected = errors.New("value rejected")

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in validation rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := validator.DefaultRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range reg.Names() {
				def, _ := reg.Lookup(name)
				fmt.Fprintf(w, "%s\t%s\n", def.Name, def.Message)
			}
			return w.Flush()
		},
	}
}

func newCheckCmd() *cobra.Command {
	var (
		args    []string
		message string
	)
	cmd := &cobra.Command{
		Use:     "check RULE VALUE",
		Short:   "Evaluate one rule against a value",
		Example: "  trustform check mac 00:11:22:33:44:55\n  trustform check min --arg 8 hunter2",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, positional []string) error {
			rule, err := validator.DefaultRegistry().Rule("value", positional[0], positional[1],
				validator.RuleOptions{Args: args, Message: message})
			if err != nil {
				return err
			}
			if err := validator.Apply(rule); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n", rule.Error.Message)
				return errRejected
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&args, "arg", nil, "rule argument, repeatable")
	cmd.Flags().StringVar(&message, "message", "", "failure message override")
	return cmd
}
