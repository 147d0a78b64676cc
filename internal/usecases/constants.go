package usecases

import "github.com/shopspring/decimal"

const (
	// smsReferencePrefix namespaces dispatch debit references
	smsReferencePrefix = "SMS-"

	// topUpPurpose tags gateway metadata so reconciliation can tell wallet
	// top-ups apart from other payments
	topUpPurpose = "wallet_topup"
)

var decimalZero = decimal.Zero
