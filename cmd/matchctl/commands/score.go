package commands

import (
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/spf13/cobra"
)

type quickResult struct {
	UserID      int64 `json:"user_id"`
	CandidateID int64 `json:"candidate_id"`
	Score       int   `json:"score"`
}

// NewScoreCmd creates the score command
func NewScoreCmd() *cobra.Command {
	var userPath, candidatePath string
	var quick, insights bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a candidate profile against a user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user, candidate matching.Profile
			if err := loadFixture(userPath, &user); err != nil {
				return err
			}
			if err := loadFixture(candidatePath, &candidate); err != nil {
				return err
			}

			if quick {
				return writeJSON(cmd.OutOrStdout(), quickResult{
					UserID:      user.ID,
					CandidateID: candidate.ID,
					Score:       matching.QuickCompatibilityScore(user, candidate),
				})
			}

			score := matching.NewEngine().CalculateCompatibility(user, candidate, nil)
			if insights {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"score":    score,
					"reason":   matching.GetMatchReason(score),
					"insights": matching.GenerateMatchInsights(score, user, candidate),
				})
			}
			return writeJSON(cmd.OutOrStdout(), score)
		},
	}

	cmd.Flags().StringVar(&userPath, "user", "", "user profile fixture")
	cmd.Flags().StringVar(&candidatePath, "candidate", "", "candidate profile fixture")
	cmd.Flags().BoolVar(&quick, "quick", false, "print only the quick ranking score")
	cmd.Flags().BoolVar(&insights, "insights", false, "include headline, highlights and tips")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("candidate")

	return cmd
}
