package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptix/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the learner's stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		if force, _ := cmd.Flags().GetBool("force"); !force {
			fmt.Printf("Delete all data for %q? [y/N] ", e.cfg.UserID)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		for _, key := range store.UserKeys(e.cfg.UserID) {
			if err := e.st.Delete(ctx, key); err != nil {
				return err
			}
		}
		fmt.Printf("Cleared data for %s\n", e.cfg.UserID)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
