package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/modboard/modboard/internal/auth"
	"github.com/modboard/modboard/internal/config"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	sendMessageFrom string
	sendMessageTo   string
	sendMessageText string
)

var sendMessageCmd = &cobra.Command{
	Use:   "send-message",
	Short: "Send a direct message to a member through the bot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithOptions(config.LoadOptions{RequireBotAPI: true})
		if err != nil {
			return err
		}
		from := auth.NormalizeUserID(sendMessageFrom)
		if from == "" {
			from = auth.NormalizeUserID(cfg.AdminUserID)
		}
		if from == "" {
			return errors.New("--from is required when ADMIN_USER_ID is not set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api, err := newBotAPIClient(ctx, cfg)
		if err != nil {
			return err
		}
		dash, err := dashboard.New(api, dashboard.Options{})
		if err != nil {
			return err
		}

		to := auth.NormalizeUserID(sendMessageTo)
		if err := dash.SendMessage(ctx, from, to, sendMessageText); err != nil {
			return err
		}
		cmd.Printf("message sent to %s\n", to)
		return nil
	},
}

func init() {
	sendMessageCmd.Flags().StringVar(&sendMessageFrom, "from", "", "Discord user id of the sending staff member (default ADMIN_USER_ID)")
	sendMessageCmd.Flags().StringVar(&sendMessageTo, "to", "", "Discord user id of the recipient")
	sendMessageCmd.Flags().StringVar(&sendMessageText, "message", "", "message text")
}
