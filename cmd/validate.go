package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trainstop/trainstop/stop"
)

var validatePolicyPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a policy bundle file",
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := stop.LoadPolicyBundle(validatePolicyPath)
		if err != nil {
			logrus.Fatalf("Failed to load policy bundle: %v", err)
		}
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("Invalid policy bundle: %v", err)
		}
		if _, err := bundle.Build(); err != nil {
			logrus.Fatalf("Failed to build policy: %v", err)
		}
		fmt.Printf("%s: %d policies OK\n", validatePolicyPath, len(bundle.Policies))
	},
}

func init() {
	validateCmd.Flags().StringVar(&validatePolicyPath, "policy", "", "Path to policy bundle YAML file")
	_ = validateCmd.MarkFlagRequired("policy")

	rootCmd.AddCommand(validateCmd)
}
