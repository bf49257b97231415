package domain_test

import (
	"testing"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		hasSrc  bool
		hasDst  bool
		want    domain.TransactionType
		wantErr bool
	}{
		{name: "destination only is a deposit", hasSrc: false, hasDst: true, want: domain.TypeDeposit},
		{name: "source only is a withdrawal", hasSrc: true, hasDst: false, want: domain.TypeWithdrawal},
		{name: "both endpoints is a transfer", hasSrc: true, hasDst: true, want: domain.TypeTransfer},
		{name: "no endpoints is rejected", hasSrc: false, hasDst: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.Classify(tt.hasSrc, tt.hasDst)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrMalformedTransaction)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.TransactionStatus
		to     domain.TransactionStatus
		want   bool
	}{
		{name: "pending to success", from: domain.StatusPending, to: domain.StatusSuccess, want: true},
		{name: "pending to failed", from: domain.StatusPending, to: domain.StatusFailed, want: true},
		{name: "pending cannot cancel", from: domain.StatusPending, to: domain.StatusCancelled, want: false},
		{name: "success to cancelled", from: domain.StatusSuccess, to: domain.StatusCancelled, want: true},
		{name: "success to refunded", from: domain.StatusSuccess, to: domain.StatusRefunded, want: true},
		{name: "success cannot fail", from: domain.StatusSuccess, to: domain.StatusFailed, want: false},
		{name: "failed is terminal", from: domain.StatusFailed, to: domain.StatusSuccess, want: false},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: domain.StatusRefunded, want: false},
		{name: "refunded is terminal", from: domain.StatusRefunded, to: domain.StatusCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransaction_IsParty(t *testing.T) {
	src := "acc-src"
	dst := "acc-dst"
	tx := domain.Transaction{
		SourceAccountID:      &src,
		DestinationAccountID: &dst,
	}

	assert.True(t, tx.IsParty(src))
	assert.True(t, tx.IsParty(dst))
	assert.False(t, tx.IsParty("acc-other"))

	deposit := domain.Transaction{DestinationAccountID: &dst}
	assert.False(t, deposit.IsParty(src))
	assert.True(t, deposit.IsParty(dst))
}
