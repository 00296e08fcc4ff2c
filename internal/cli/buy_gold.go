package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBuyGoldCmd は模擬的な金購入を行うコマンドを生成します。
// --idempotency-key を指定すると、同じキーでの再実行は保存済みの注文を返します。
func NewBuyGoldCmd(app *App) *cobra.Command {
	var (
		userID string
		amount float64
		key    string
	)

	cmd := &cobra.Command{
		Use:   "buy-gold",
		Short: "Buy digital gold for an INR amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, replayed, err := app.Client().BuyGold(cmd.Context(), userID, amount, key)
			if err != nil {
				return err
			}
			if replayed {
				fmt.Fprintln(cmd.ErrOrStderr(), "replayed stored result for idempotency key", key)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in INR")
	cmd.Flags().StringVar(&key, "idempotency-key", "", "Idempotency-Key header value")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
