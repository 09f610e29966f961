package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/logger"
	"github.com/abhisek/adaptix/internal/store"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show personalized recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := logger.WithContext(cmd.Context(), e.log)

		if id, _ := cmd.Flags().GetString("dismiss"); id != "" {
			if err := store.NewRecommendationRepo(e.st).Dismiss(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Dismissed %s\n", id)
			return nil
		}

		ageFlag, _ := cmd.Flags().GetString("age")
		group := learner.AgeGroup(ageFlag)
		if group == "" {
			group = e.orch.DetectAgeGroup(ctx).PredictedAgeGroup
		}

		recs := e.orch.GenerateRecommendations(ctx, group)
		if len(recs) == 0 {
			fmt.Println("Nothing to suggest right now. Keep playing!")
			return nil
		}
		for _, r := range recs {
			fmt.Printf("[%s/%s] %s\n", r.Priority, r.Type, r.Title)
			fmt.Printf("    %s\n", r.Description)
			fmt.Printf("    -> %s (id: %s)\n", r.Action, r.ID)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("age", "", "Age bracket to target (kids/teens/adults/seniors); detected when empty")
	recommendCmd.Flags().String("dismiss", "", "Mark a recommendation id as handled")
}
