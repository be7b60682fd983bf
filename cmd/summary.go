package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NgigiN/carteira/internal/chat"
	"github.com/NgigiN/carteira/internal/storage"
)

func (a *app) summaryCmd() *cobra.Command {
	var (
		owner        string
		installments bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the month summary or open installments of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if owner == "" {
				return errors.New("--owner is required")
			}
			db, err := storage.NewDatabase(a.cfg.DBPath, a.log)
			if err != nil {
				return fmt.Errorf("failed to open the database: %w", err)
			}
			defer db.Close()

			assistant := chat.NewAssistant(db, chat.SystemClock{Location: a.cfg.Location}, a.log)
			var text string
			if installments {
				text, err = assistant.Installments(cmd.Context(), owner)
			} else {
				text, err = assistant.Summary(cmd.Context(), owner)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Discord user id whose records are summarized")
	cmd.Flags().BoolVar(&installments, "installments", false, "list open installment plans instead of the month summary")
	return cmd
}
