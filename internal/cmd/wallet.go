package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet commands",
	Long:  "Check your credit balance and buy credit packages",
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show your credit balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewWalletService(rt.deps()).Balance()
	},
}

var walletPackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List credit packages for sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewWalletService(rt.deps()).Packages()
	},
}

var walletPurchaseCmd = &cobra.Command{
	Use:   "purchase <package-id>",
	Short: "Buy a credit package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewWalletService(rt.deps()).Purchase(args[0])
	},
}

func init() {
	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletPackagesCmd)
	walletCmd.AddCommand(walletPurchaseCmd)
}
