package domain_test

import (
	"testing"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseAdvancePurpose(t *testing.T) {
	tests := []struct {
		raw    string
		want   domain.AdvancePurpose
		wantOK bool
	}{
		{"advance", domain.PurposeAdvance, true},
		{"Safety Shoes", domain.PurposeSafetyShoes, true},
		{"safety-shoes", domain.PurposeSafetyShoes, true},
		{" TOOLS ", domain.PurposeTools, true},
		{"other", domain.PurposeOther, true},
		{"uniform", domain.PurposeUnknown, false},
		{"", domain.PurposeUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := domain.ParseAdvancePurpose(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseApprovalStatus(t *testing.T) {
	got, ok := domain.ParseApprovalStatus("Approved")
	assert.Equal(t, domain.ApprovalApproved, got)
	assert.True(t, ok)

	got, ok = domain.ParseApprovalStatus("on_hold")
	assert.Equal(t, domain.ApprovalPending, got)
	assert.False(t, ok)
}

func TestParsePaymentStatus(t *testing.T) {
	got, ok := domain.ParsePaymentStatus("PAID")
	assert.Equal(t, domain.PaymentPaid, got)
	assert.True(t, ok)

	got, ok = domain.ParsePaymentStatus("partially_paid")
	assert.Equal(t, domain.PaymentPending, got)
	assert.False(t, ok)
}

func TestParseApproverType(t *testing.T) {
	tests := []struct {
		raw    string
		want   domain.ApproverType
		wantOK bool
	}{
		{"ho", domain.ApproverHeadOffice, true},
		{"Head Office", domain.ApproverHeadOffice, true},
		{"supervisor", domain.ApproverSupervisor, true},
		{"", domain.ApproverSupervisor, true},
		{"contractor", domain.ApproverSupervisor, false},
	}
	for _, tt := range tests {
		got, ok := domain.ParseApproverType(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.wantOK, ok, tt.raw)
	}
}

func TestParseExpenseCategory(t *testing.T) {
	got, ok := domain.ParseExpenseCategory("Site Expenses")
	assert.Equal(t, domain.CategorySiteExpenses, got)
	assert.True(t, ok)

	got, ok = domain.ParseExpenseCategory("labor")
	assert.Equal(t, domain.CategoryLabour, got)
	assert.True(t, ok)

	got, ok = domain.ParseExpenseCategory("snacks")
	assert.Equal(t, domain.CategoryOther, got)
	assert.False(t, ok)
}

func TestParseRecipientType(t *testing.T) {
	got, ok := domain.ParseRecipientType("Subcontractor")
	assert.Equal(t, domain.RecipientSubcontractor, got)
	assert.True(t, ok)

	got, ok = domain.ParseRecipientType("vendor")
	assert.Equal(t, domain.RecipientUnknown, got)
	assert.False(t, ok)
}
