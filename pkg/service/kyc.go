package service

import (
	"fmt"
	"strings"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

// KYCService handles creator identity verification
type KYCService struct {
	Deps
}

// NewKYCService creates a new KYC service
func NewKYCService(deps Deps) *KYCService {
	return &KYCService{Deps: deps}
}

// Status prints the verification state
func (s *KYCService) Status() error {
	end := s.busy()
	status, err := api.GetKYCStatus()
	end()
	if err != nil {
		return fmt.Errorf("failed to fetch KYC status: %w", err)
	}
	return s.printStatus(status)
}

// Submit sends an identity document for review
func (s *KYCService) Submit(sub api.KYCSubmission) error {
	sub.FullName = strings.TrimSpace(sub.FullName)
	sub.Country = strings.ToUpper(strings.TrimSpace(sub.Country))
	switch {
	case sub.FullName == "":
		return clierrors.ValidationError("full name", "cannot be empty")
	case len(sub.Country) != 2:
		return clierrors.ValidationError("country", "must be a two-letter code")
	case sub.DocumentType == "":
		return clierrors.ValidationError("document type", "cannot be empty")
	case sub.DocumentURL == "":
		return clierrors.ValidationError("document URL", "cannot be empty")
	}

	end := s.busy()
	status, err := api.SubmitKYC(sub)
	end()
	if err != nil {
		return fmt.Errorf("failed to submit KYC: %w", err)
	}

	s.Out.Success("✓ Documents submitted for review")
	return s.printStatus(status)
}

func (s *KYCService) printStatus(status *api.KYCStatus) error {
	fields := []output.Field{{Key: "Status", Value: status.Status}}
	if status.Reason != "" {
		fields = append(fields, output.Field{Key: "Reason", Value: status.Reason})
	}
	if status.SubmittedAt != nil {
		fields = append(fields, output.Field{Key: "Submitted", Value: status.SubmittedAt.Format("2006-01-02 15:04")})
	}
	if status.ReviewedAt != nil {
		fields = append(fields, output.Field{Key: "Reviewed", Value: status.ReviewedAt.Format("2006-01-02 15:04")})
	}
	return s.Out.Record("Verification", fields, status)
}
