package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/service"
)

var kycSubmission api.KYCSubmission

var kycCmd = &cobra.Command{
	Use:   "kyc",
	Short: "Identity verification commands",
	Long:  "Check or submit the identity verification creators need before payouts",
}

var kycStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your verification status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewKYCService(rt.deps()).Status()
	},
}

var kycSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an identity document for review",
	Example: `  creatorhub kyc submit --name "Alice Example" --country US \
    --document-type passport --document-url https://files.example.com/passport.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewKYCService(rt.deps()).Submit(kycSubmission)
	},
}

func init() {
	kycSubmitCmd.Flags().StringVar(&kycSubmission.FullName, "name", "", "Full legal name")
	kycSubmitCmd.Flags().StringVar(&kycSubmission.Country, "country", "", "Two-letter country code")
	kycSubmitCmd.Flags().StringVar(&kycSubmission.DocumentType, "document-type", "", "Document type (passport, id_card, drivers_license)")
	kycSubmitCmd.Flags().StringVar(&kycSubmission.DocumentURL, "document-url", "", "URL of the uploaded document")

	kycCmd.AddCommand(kycStatusCmd)
	kycCmd.AddCommand(kycSubmitCmd)
}
