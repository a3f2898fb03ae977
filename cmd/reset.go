package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lurnix/internal/session"
	"lurnix/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored sign-in session",
	Long:  "Removes the saved user profile so the next launch starts at the sign-in screen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sess := session.New(st.SessionRepo())
		ctx := context.Background()

		if _, err := sess.Load(ctx); errors.Is(err, session.ErrNoProfile) {
			fmt.Println("No stored session.")
			return nil
		}
		if err := sess.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Session cleared. The next launch will ask you to sign in.")
		return nil
	},
}
