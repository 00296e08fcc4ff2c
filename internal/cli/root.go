// Package cli は kuberctl のコマンドを定義します。
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kuber_backend/internal/client"
)

// DefaultServerURL はローカルで起動したサーバーのアドレスです。
const DefaultServerURL = "http://127.0.0.1:8000"

// App はサブコマンド間で共有する接続設定です。
type App struct {
	ServerURL string
	APIKey    string
	Timeout   time.Duration
}

// Client は現在の設定でAPIクライアントを生成します。
func (a *App) Client() *client.Client {
	return client.NewClient(a.ServerURL, a.APIKey, a.Timeout)
}

// NewRootCmd はルートコマンドを生成し、サブコマンドを登録します。
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "kuberctl",
		Short: "Kuber AI gold assistant API client",
		Long: `kuberctl talks to a running Kuber backend.

Examples:
  kuberctl health
  kuberctl chat --user abc --message "Is gold a good hedge?"
  kuberctl buy-gold --user abc --amount 12000 --idempotency-key order-42
`,
		SilenceUsage: true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")
	cmd.PersistentFlags().StringVar(&app.APIKey, "api-key", os.Getenv("KUBER_API_KEY"), "API key sent as x-api-key (default $KUBER_API_KEY)")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 60*time.Second, "request timeout")

	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewChatCmd(app))
	cmd.AddCommand(NewBuyGoldCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute はコマンドを実行し、失敗した場合は終了コード1で終了します。
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
