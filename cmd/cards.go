package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sgoswami/tutorbox/internal/flashcards"
	"github.com/sgoswami/tutorbox/internal/store"
	"github.com/spf13/cobra"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List flashcards and when they come due",
	RunE: func(cmd *cobra.Command, args []string) error {
		dueOnly, _ := cmd.Flags().GetBool("due")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		all, err := s.CardRepo().List(context.Background())
		if err != nil {
			return fmt.Errorf("query cards: %w", err)
		}

		now := time.Now()
		cards := all
		if dueOnly {
			cards = flashcards.Due(all, now)
		}

		if len(cards) == 0 {
			if dueOnly {
				fmt.Println("No cards due. Review sessions will add more when questions are missed.")
			} else {
				fmt.Println("No flashcards yet. Missed exam questions become cards automatically.")
			}
			return nil
		}

		fmt.Printf("%-10s  %-5s  %-9s  %s\n", "Due", "Stage", "Interval", "Front")
		fmt.Println(strings.Repeat("─", 72))
		for _, c := range cards {
			due := c.NextReview.Local().Format("2006-01-02")
			if c.IsDue(now) {
				due = "now"
			}
			front := c.Front
			if len(front) > 44 {
				front = front[:44] + "…"
			}
			fmt.Printf("%-10s  %-5d  %3dd       %s\n", due, c.Stage, c.CurrentIntervalDays(), front)
		}
		fmt.Printf("\n%d card(s), %d due\n", len(all), len(flashcards.Due(all, now)))
		return nil
	},
}

func init() {
	cardsCmd.Flags().Bool("due", false, "Only show cards due for review")
}
