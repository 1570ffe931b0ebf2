package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerlens",
	Short: "Career prediction client",
	Long:  "CareerLens is a terminal client for the career prediction service: keep an academic profile, get ranked role predictions, and explore market insights.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a careerlens.yaml config file")
	flags.String("api-url", "", "Backend base URL (overrides CAREERLENS_API_URL)")
	flags.String("db", "", "Path to SQLite database file (overrides CAREERLENS_DB)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(versionCmd)
}
