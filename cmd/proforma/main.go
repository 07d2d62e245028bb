package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "proforma",
		Short:         "Square-foot pro forma feasibility for development sites",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "parameter set YAML (default: stock parameters)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(defaultsCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(referenceCmd(g))
	rootCmd.AddCommand(lookupCmd(g))
	rootCmd.AddCommand(importCmd(g))
	rootCmd.AddCommand(runCmd(g))

	return rootCmd
}

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the stock parameter set as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDefaults(cmd.OutOrStdout())
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config.yaml]",
		Short: "Check a parameter set without evaluating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func referenceCmd(g *globalFlags) *cobra.Command {
	var form, parking string
	var breakEven, asJSON bool

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Show the reference table for a form and parking configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReference(cmd.OutOrStdout(), g, referenceOptions{
				form:      form,
				parking:   parking,
				breakEven: breakEven,
				asJSON:    asJSON,
			})
		},
	}

	cmd.Flags().StringVarP(&form, "form", "f", "residential", "building form")
	cmd.Flags().StringVarP(&parking, "parking", "p", "surface", "parking configuration")
	cmd.Flags().BoolVar(&breakEven, "break-even", false, "only print break-even costs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func lookupCmd(g *globalFlags) *cobra.Command {
	var forms []string

	cmd := &cobra.Command{
		Use:   "lookup [sites.json]",
		Short: "Evaluate the sites in a JSON file and print the feasible ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), cmd.OutOrStdout(), g, args[0], forms)
		},
	}

	cmd.Flags().StringSliceVarP(&forms, "form", "f", nil, "forms to evaluate (default: forms_to_test)")
	return cmd
}

func importCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import [sites.json]",
		Short: "Load sites into the configured store for asynchronous runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), g, args[0])
		},
	}
}

func runCmd(g *globalFlags) *cobra.Command {
	var forms []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Queue an asynchronous run over the stored sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQueue(cmd.Context(), cmd.OutOrStdout(), g, forms)
		},
	}

	cmd.Flags().StringSliceVarP(&forms, "form", "f", nil, "forms to evaluate (default: forms_to_test)")
	return cmd
}
