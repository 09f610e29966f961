package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptix/internal/logger"
	"github.com/abhisek/adaptix/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := logger.WithContext(cmd.Context(), e.log)

		progress := store.NewProgressRepo(e.st)
		if snap, ok := progress.Load(ctx, e.cfg.UserID); ok {
			fmt.Printf("Learner %s: %d sessions, %d problems, level %s, last played %s\n\n",
				snap.UserID, snap.TotalSessions, snap.TotalProblems,
				snap.CurrentLevel, snap.LastPlayedTime().Format("2006-01-02 15:04"))
		} else {
			fmt.Printf("Learner %s: no recorded sessions yet\n\n", e.cfg.UserID)
		}

		m := e.orch.Metrics(ctx)
		fmt.Println("Profile")
		fmt.Printf("  preferred difficulty  %s\n", m.PreferredDifficulty)
		fmt.Printf("  best time of day      %s\n", m.OptimalPlayTime)
		fmt.Printf("  avg session           %.1f min\n", m.AverageSessionLength)
		fmt.Printf("  learning style        %s\n", m.LearningStyle)
		fmt.Printf("  engagement            %.2f\n", m.EngagementLevel)
		fmt.Printf("  burnout risk          %.2f\n", m.BurnoutRisk)
		if len(m.StrongestCategories) > 0 {
			fmt.Printf("  strengths             %s\n", strings.Join(m.StrongestCategories, ", "))
		}
		if len(m.WeakestCategories) > 0 {
			fmt.Printf("  needs work            %s\n", strings.Join(m.WeakestCategories, ", "))
		}

		fmt.Println("\nTrends")
		for _, tr := range e.orch.Trends(ctx) {
			fmt.Printf("  %-18s %-10s %+.1f%% (%s)\n", tr.Metric, tr.Direction, tr.ChangePercent, tr.Significance)
		}

		age := e.orch.DetectAgeGroup(ctx)
		fmt.Printf("\nAge bracket: %s (confidence %.2f)\n", age.PredictedAgeGroup.DisplayName(), age.Confidence)
		for _, r := range age.Reasoning {
			fmt.Printf("  - %s\n", r)
		}

		insightList := e.orch.Insights(ctx)
		if len(insightList) > 0 {
			fmt.Println("\nInsights")
			for _, in := range insightList {
				fmt.Printf("  [%s] %s (%.0f%%)\n", in.Type, in.Title, in.Confidence*100)
				fmt.Printf("      %s\n", in.Description)
			}
		}
		return nil
	},
}
