package cli

import "github.com/spf13/cobra"

// NewChatCmd はメッセージを送信して分類結果を表示するコマンドを生成します。
//
//	kuberctl chat --user abc --message "Should I buy gold?"
func NewChatCmd(app *App) *cobra.Command {
	var userID, message string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask the assistant a question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Client().Chat(cmd.Context(), userID, message)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&message, "message", "", "message to send")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
