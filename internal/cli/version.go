package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd はビルド情報を表示するコマンドを生成します。
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build version and date",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s\nbuild_date=%s\n", buildVersion, buildDate)
		},
	}
}
