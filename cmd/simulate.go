package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptix/internal/logger"
	"github.com/abhisek/adaptix/internal/performance"
	"github.com/abhisek/adaptix/internal/personalization"
	"github.com/abhisek/adaptix/internal/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulated practice session",
	Long:  "Generates an adaptive problem sequence, answers it with a configurable accuracy, and records the session so the engine has history to learn from.",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		targetWeakness, _ := cmd.Flags().GetBool("target-weakness")

		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := logger.WithContext(cmd.Context(), e.log)

		problems, err := e.orch.GenerateSessionSequence(ctx, personalization.Request{TargetWeakness: targetWeakness}, count)
		if err != nil {
			return fmt.Errorf("generate sequence: %w", err)
		}

		tracker := performance.NewTracker(e.cfg.UserID, e.track)
		if _, err := tracker.StartSession(); err != nil {
			return err
		}

		seed := e.cfg.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed + 2))

		ctrl := e.orch.Controller()
		for i, p := range problems {
			correct := rng.Float64() < accuracy
			responseTime := p.TimeEstimate * (0.5 + rng.Float64())

			resp := performance.Response{
				Correct:      correct,
				ResponseTime: responseTime,
				Difficulty:   p.Difficulty,
				Category:     p.Category,
				Operation:    p.Operation,
			}
			if !correct && p.Adaptive.HintsEnabled {
				resp.HintsUsed = 1
			}
			if err := tracker.RecordResponse(resp); err != nil {
				return err
			}
			ctrl.UpdatePerformance(correct, responseTime, p.Difficulty)

			mark := "✗"
			if correct {
				mark = "✓"
			}
			fmt.Printf("%2d. [%s] %-8s %s (answer: %s)\n", i+1, mark, p.Difficulty, p.Question, p.CorrectAnswer)
		}

		record, err := tracker.EndSession(ctx)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Session %s: %d/%d correct (%.0f%%), avg %.1fs\n",
			record.ID, record.ProblemsSolved, record.TotalProblems,
			record.AccuracyRate*100, record.AverageResponseTime)
		fmt.Printf("Focus %.2f · consistency %.2f · velocity %.2f\n",
			record.FocusScore, record.ConsistencyScore, record.LearningVelocity)

		progress := store.NewProgressRepo(e.st)
		snap, _ := progress.Load(ctx, e.cfg.UserID)
		snap.UserID = e.cfg.UserID
		snap.TotalSessions++
		snap.TotalProblems += record.TotalProblems
		snap.CurrentLevel = ctrl.Performance().CurrentLevel
		snap.SetLastPlayed(time.Now())
		if err := progress.Save(ctx, snap); err != nil {
			e.log.Warn("save progress: %v", err)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntP("count", "n", 10, "Number of problems in the session")
	simulateCmd.Flags().Float64P("accuracy", "a", 0.75, "Probability of answering correctly")
	simulateCmd.Flags().Bool("target-weakness", false, "Target weak categories in the middle of the session")
}
