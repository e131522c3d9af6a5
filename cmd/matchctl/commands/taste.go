package commands

import (
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/spf13/cobra"
)

// NewTasteCmd creates the taste command
func NewTasteCmd() *cobra.Command {
	var userID int64
	var viewsPath, profilesPath, conversationsPath, candidatePath string

	cmd := &cobra.Command{
		Use:   "taste",
		Short: "Build a taste profile from recorded views",
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []matching.ProfileView
			if err := loadFixture(viewsPath, &views); err != nil {
				return err
			}

			profilesByID := make(map[int64]matching.Profile)
			if profilesPath != "" {
				var profiles []matching.Profile
				if err := loadFixture(profilesPath, &profiles); err != nil {
					return err
				}
				for _, p := range profiles {
					profilesByID[p.ID] = p
				}
			}

			var conversations []matching.ConversationMetrics
			if conversationsPath != "" {
				if err := loadFixture(conversationsPath, &conversations); err != nil {
					return err
				}
			}

			taste := matching.NewEngine().BuildTasteProfile(userID, views, profilesByID, conversations, nil)

			if candidatePath == "" {
				return writeJSON(cmd.OutOrStdout(), taste)
			}

			var candidate matching.Profile
			if err := loadFixture(candidatePath, &candidate); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"taste": taste,
				"match": matching.MatchesTasteProfile(candidate, taste),
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "owner of the views")
	cmd.Flags().StringVar(&viewsPath, "views", "", "list of profile views")
	cmd.Flags().StringVar(&profilesPath, "profiles", "", "profiles used to resolve likes without a snapshot")
	cmd.Flags().StringVar(&conversationsPath, "conversations", "", "conversation metrics")
	cmd.Flags().StringVar(&candidatePath, "match", "", "optional candidate to check against the built taste")
	cmd.MarkFlagRequired("views")

	return cmd
}
