package api

import (
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// Wallet is the user's credit balance
type Wallet struct {
	Balance   int       `json:"balance"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreditPackage is a purchasable bundle of credits
type CreditPackage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Credits    int    `json:"credits"`
	PriceCents int    `json:"price_cents"`
	Currency   string `json:"currency"`
}

// PurchaseRequest buys a credit package
type PurchaseRequest struct {
	PackageID string `json:"package_id"`
}

// PurchaseResponse is the result of a purchase
type PurchaseResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	Wallet        Wallet `json:"wallet"`
}

// GetWallet retrieves the current user's wallet
func GetWallet() (*Wallet, error) {
	logger.Debug("Fetching wallet")

	var response struct {
		Wallet Wallet `json:"wallet"`
	}

	resp, err := client.GetClient().
		R().
		Get("/api/v1/wallet")

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response.Wallet, nil
}

// ListCreditPackages lists the packages on sale
func ListCreditPackages() ([]CreditPackage, error) {
	logger.Debug("Listing credit packages")

	var response struct {
		Packages []CreditPackage `json:"packages"`
	}

	resp, err := client.GetClient().
		R().
		Get("/api/v1/wallet/packages")

	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return response.Packages, nil
}

// PurchaseCredits starts a purchase of a credit package
func PurchaseCredits(packageID string) (*PurchaseResponse, error) {
	logger.Debug("Purchasing credits", "package_id", packageID)

	resp, err := client.GetClient().
		R().
		SetBody(PurchaseRequest{PackageID: packageID}).
		Post("/api/v1/wallet/purchase")

	var response PurchaseResponse
	if err := decode(resp, err, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
