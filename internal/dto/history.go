package dto

import (
	"fmt"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// ListTransactionsParams are the query parameters of the history listing.
// Pages are zero-based; out-of-range pages return an empty page rather than
// being clamped.
type ListTransactionsParams struct {
	Text     string `form:"q"`
	Status   string `form:"status"`
	Type     string `form:"type"`
	From     string `form:"from"` // RFC 3339, inclusive
	To       string `form:"to"`   // RFC 3339, inclusive
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	SortBy   string `form:"sortBy"`
	SortDir  string `form:"sortDir"`
}

// ToFilter validates the parameters and converts them to domain filter and
// page types.
func (p ListTransactionsParams) ToFilter() (domain.TransactionFilter, domain.PageRequest, error) {
	filter := domain.TransactionFilter{Text: p.Text}

	if p.Status != "" {
		status := domain.TransactionStatus(p.Status)
		switch status {
		case domain.StatusPending, domain.StatusSuccess, domain.StatusFailed,
			domain.StatusCancelled, domain.StatusRefunded:
			filter.Status = &status
		default:
			return filter, domain.PageRequest{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, p.Status)
		}
	}

	if p.Type != "" {
		txType := domain.TransactionType(p.Type)
		switch txType {
		case domain.TypeDeposit, domain.TypeWithdrawal, domain.TypeTransfer:
			filter.Type = &txType
		default:
			return filter, domain.PageRequest{}, fmt.Errorf("%w: unknown type %q", apperrors.ErrValidation, p.Type)
		}
	}

	if p.From != "" {
		from, err := time.Parse(time.RFC3339, p.From)
		if err != nil {
			return filter, domain.PageRequest{}, fmt.Errorf("%w: invalid from date: %v", apperrors.ErrValidation, err)
		}
		filter.From = &from
	}
	if p.To != "" {
		to, err := time.Parse(time.RFC3339, p.To)
		if err != nil {
			return filter, domain.PageRequest{}, fmt.Errorf("%w: invalid to date: %v", apperrors.ErrValidation, err)
		}
		filter.To = &to
	}

	page := domain.PageRequest{
		Page:     p.Page,
		PageSize: p.PageSize,
		Sort:     domain.SortByTimestamp,
		Dir:      domain.SortDesc,
	}
	if p.Page < 0 {
		return filter, page, fmt.Errorf("%w: page must be >= 0", apperrors.ErrValidation)
	}
	if p.SortBy != "" {
		sort := domain.SortField(p.SortBy)
		switch sort {
		case domain.SortByTimestamp, domain.SortByAmount, domain.SortByStatus,
			domain.SortByType, domain.SortByID:
			page.Sort = sort
		default:
			return filter, page, fmt.Errorf("%w: unknown sort field %q", apperrors.ErrValidation, p.SortBy)
		}
	}
	if p.SortDir != "" {
		switch domain.SortDirection(p.SortDir) {
		case domain.SortAsc:
			page.Dir = domain.SortAsc
		case domain.SortDesc:
			page.Dir = domain.SortDesc
		default:
			return filter, page, fmt.Errorf("%w: sort direction must be asc or desc", apperrors.ErrValidation)
		}
	}

	return filter, page, nil
}

// ListTransactionsResponse is one page of history plus paging metadata.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int64                 `json:"totalCount"`
	TotalPages   int                   `json:"totalPages"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}
