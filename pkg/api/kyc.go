package api

import (
	"time"

	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// KYC verification states
const (
	KYCStatusNone     = "none"
	KYCStatusPending  = "pending"
	KYCStatusApproved = "approved"
	KYCStatusRejected = "rejected"
)

// KYCStatus is the creator's identity verification state
type KYCStatus struct {
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

// KYCSubmission carries the identity document reference
type KYCSubmission struct {
	FullName     string `json:"full_name"`
	Country      string `json:"country"`
	DocumentType string `json:"document_type"`
	DocumentURL  string `json:"document_url"`
}

// GetKYCStatus retrieves the current verification state
func GetKYCStatus() (*KYCStatus, error) {
	logger.Debug("Fetching KYC status")

	resp, err := client.GetClient().
		R().
		Get("/api/v1/kyc")

	var status KYCStatus
	if err := decode(resp, err, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

// SubmitKYC submits identity documents for review
func SubmitKYC(submission KYCSubmission) (*KYCStatus, error) {
	logger.Debug("Submitting KYC", "document_type", submission.DocumentType, "country", submission.Country)

	resp, err := client.GetClient().
		R().
		SetBody(submission).
		Post("/api/v1/kyc")

	var status KYCStatus
	if err := decode(resp, err, &status); err != nil {
		return nil, err
	}

	return &status, nil
}
