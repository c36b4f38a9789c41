package service

import (
	"fmt"
	"strings"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/formatter"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

// WalletService shows the credit balance and sells credit packages
type WalletService struct {
	Deps
}

// NewWalletService creates a new wallet service
func NewWalletService(deps Deps) *WalletService {
	return &WalletService{Deps: deps}
}

// Balance prints the wallet balance
func (s *WalletService) Balance() error {
	end := s.busy()
	wallet, err := api.GetWallet()
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch wallet: %w", err)
	}

	return s.Out.Record("Wallet", []output.Field{
		{Key: "Balance", Value: formatter.Noun(wallet.Balance, "credit")},
		{Key: "Currency", Value: strings.ToUpper(wallet.Currency)},
	}, wallet)
}

// Packages lists the credit packages on sale
func (s *WalletService) Packages() error {
	end := s.busy()
	packages, err := api.ListCreditPackages()
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch credit packages: %w", err)
	}

	if len(packages) == 0 {
		s.Out.Info("No credit packages available.")
		return nil
	}

	rows := make([][]string, 0, len(packages))
	for _, p := range packages {
		rows = append(rows, []string{p.ID, p.Name, formatter.Count(p.Credits), formatter.Cents(p.PriceCents, p.Currency)})
	}
	return s.Out.List([]string{"ID", "Package", "Credits", "Price"}, rows, packages)
}

// Purchase starts buying a credit package
func (s *WalletService) Purchase(packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return fmt.Errorf("package ID cannot be empty")
	}

	end := s.busy()
	purchase, err := api.PurchaseCredits(packageID)
	end()
	if err != nil {
		return fmt.Errorf("failed to purchase credits: %w", err)
	}

	if s.Out.Format() == output.FormatJSON {
		return s.Out.JSON(purchase)
	}
	if purchase.CheckoutURL != "" {
		s.Out.Info("Complete the payment at %s", purchase.CheckoutURL)
		return nil
	}
	s.Out.Success("✓ Purchase %s: balance is now %s", purchase.Status, formatter.Noun(purchase.Wallet.Balance, "credit"))
	return nil
}
