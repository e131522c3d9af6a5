package commands

import (
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var profilePath, otherPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the text analyzer over a profile, or compare two profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile matching.Profile
			if err := loadFixture(profilePath, &profile); err != nil {
				return err
			}

			if otherPath == "" {
				return writeJSON(cmd.OutOrStdout(), matching.AnalyzeProfile(profile))
			}

			var other matching.Profile
			if err := loadFixture(otherPath, &other); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), matching.AnalyzeProfileCompatibility(profile, other))
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "profile fixture")
	cmd.Flags().StringVar(&otherPath, "with", "", "optional second profile to compare against")
	cmd.MarkFlagRequired("profile")

	return cmd
}
