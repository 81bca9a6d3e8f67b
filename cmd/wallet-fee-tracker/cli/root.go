package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/feetracker-io/wallet-fee-tracker/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	// overrides the default config path, the --config flag still wins
	configPathEnv = "FEETRACKER_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:           "wallet-fee-tracker",
		Short:         "Lifetime transaction fee statistics of ledger wallets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Setup(ctx context.Context) error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(SyncCmd())
	rootCmd.AddCommand(RankCmd())
	rootCmd.AddCommand(DumpCacheCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))

	return rootCmd.ExecuteContext(ctx)
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
