package domain

import "strings"

// ApprovalStatus is the review state of an expense or advance.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ExpenseCategory is one of the fixed site cost categories.
type ExpenseCategory string

const (
	CategoryMaterials    ExpenseCategory = "materials"
	CategoryLabour       ExpenseCategory = "labour"
	CategoryEquipment    ExpenseCategory = "equipment"
	CategoryTransport    ExpenseCategory = "transport"
	CategoryFuel         ExpenseCategory = "fuel"
	CategoryFood         ExpenseCategory = "food"
	CategorySiteExpenses ExpenseCategory = "site_expenses"
	CategoryRent         ExpenseCategory = "rent"
	CategoryOther        ExpenseCategory = "other"
)

// RecipientType identifies who received an advance.
type RecipientType string

const (
	RecipientWorker        RecipientType = "worker"
	RecipientSubcontractor RecipientType = "subcontractor"
	RecipientSupervisor    RecipientType = "supervisor"
	RecipientUnknown       RecipientType = "unknown"
)

// AdvancePurpose says what an advance was handed out for.
type AdvancePurpose string

const (
	PurposeAdvance     AdvancePurpose = "advance"
	PurposeSafetyShoes AdvancePurpose = "safety_shoes"
	PurposeTools       AdvancePurpose = "tools"
	PurposeOther       AdvancePurpose = "other"
	PurposeUnknown     AdvancePurpose = "unknown"
)

// PaymentStatus is whether an invoice has been settled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// ApproverType is the party an invoice is attributed to.
type ApproverType string

const (
	ApproverHeadOffice ApproverType = "ho"
	ApproverSupervisor ApproverType = "supervisor"
)

// ExpenseCategories lists every valid category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryMaterials, CategoryLabour, CategoryEquipment, CategoryTransport,
	CategoryFuel, CategoryFood, CategorySiteExpenses, CategoryRent, CategoryOther,
}

// normalizeEnum lowercases, trims and joins words with underscores so that
// "Safety Shoes", "safety-shoes" and "SAFETY_SHOES" compare equal.
func normalizeEnum(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// ParseApprovalStatus maps a stored value to an ApprovalStatus.
// Unrecognized values fall back to pending; ok reports whether the value was recognized.
func ParseApprovalStatus(raw string) (status ApprovalStatus, ok bool) {
	switch s := ApprovalStatus(normalizeEnum(raw)); s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return s, true
	}
	return ApprovalPending, false
}

// ParseExpenseCategory maps a stored value to an ExpenseCategory, falling back to other.
func ParseExpenseCategory(raw string) (ExpenseCategory, bool) {
	c := ExpenseCategory(normalizeEnum(raw))
	switch c {
	case "labor":
		return CategoryLabour, true
	case "material":
		return CategoryMaterials, true
	}
	for _, known := range ExpenseCategories {
		if c == known {
			return c, true
		}
	}
	return CategoryOther, false
}

// ParseRecipientType maps a stored value to a RecipientType, falling back to unknown.
func ParseRecipientType(raw string) (RecipientType, bool) {
	switch r := RecipientType(normalizeEnum(raw)); r {
	case RecipientWorker, RecipientSubcontractor, RecipientSupervisor:
		return r, true
	}
	return RecipientUnknown, false
}

// ParseAdvancePurpose maps a stored value to an AdvancePurpose, falling back to unknown.
func ParseAdvancePurpose(raw string) (AdvancePurpose, bool) {
	switch p := AdvancePurpose(normalizeEnum(raw)); p {
	case PurposeAdvance, PurposeSafetyShoes, PurposeTools, PurposeOther:
		return p, true
	}
	return PurposeUnknown, false
}

// ParsePaymentStatus maps a stored value to a PaymentStatus, falling back to pending.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch p := PaymentStatus(normalizeEnum(raw)); p {
	case PaymentPending, PaymentPaid:
		return p, true
	}
	return PaymentPending, false
}

// ParseApproverType maps a stored value to an ApproverType, falling back to supervisor.
// An empty value is the documented default, so it is reported as recognized.
func ParseApproverType(raw string) (ApproverType, bool) {
	switch a := normalizeEnum(raw); a {
	case "":
		return ApproverSupervisor, true
	case "ho", "head_office":
		return ApproverHeadOffice, true
	case "supervisor":
		return ApproverSupervisor, true
	}
	return ApproverSupervisor, false
}
