package validation

import (
	"strings"

	"github.com/ade-gb/investlite-demo-platform/internal/api/request"
)

// ValidateFundWallet validates a wallet funding request.
// The amount must be strictly positive; funding is rejected before any
// mutation is attempted.
func ValidateFundWallet(req request.FundWalletRequest) error {
	errors := make(map[string]string)

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateInvest validates an investment request.
// Field-level checks only: the minimum-ticket and active-asset rules need
// the catalog row and are enforced by the ledger service.
func ValidateInvest(req request.InvestRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AssetID); err != nil {
		errors["assetId"] = err.Error()
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSell validates a sale request.
func ValidateSell(req request.SellRequest) error {
	errors := make(map[string]string)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateAsset validates an admin asset creation request.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.AssetType) == "" {
		errors["assetType"] = "assetType is required"
	}
	if !ValidRiskLevel[req.RiskLevel] {
		errors["riskLevel"] = "riskLevel must be one of: low, medium, high"
	}
	if req.CurrentPrice <= 0 {
		errors["currentPrice"] = "currentPrice must be positive"
	}
	if req.MinInvestment < 0 {
		errors["minInvestment"] = "minInvestment cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidRiskLevel contains the allowed asset risk tiers.
var ValidRiskLevel = map[string]bool{
	"low": true, "medium": true, "high": true,
}
