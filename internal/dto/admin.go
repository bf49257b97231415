package dto

import "time"

// PlatformStatsResponse is the admin dashboard aggregate view.
type PlatformStatsResponse struct {
	TotalUsers        int64            `json:"totalUsers"`
	EnabledUsers      int64            `json:"enabledUsers"`
	TotalAccounts     int64            `json:"totalAccounts"`
	ActiveAccounts    int64            `json:"activeAccounts"`
	TotalTransactions int64            `json:"totalTransactions"`
	TotalBalance      int64            `json:"totalBalance"`
	AccountsByType    map[string]int64 `json:"accountsByType"`
	Timestamp         time.Time        `json:"timestamp"`
}

// TransactionStatsResponse aggregates movements over a date range.
type TransactionStatsResponse struct {
	Count       int64     `json:"count"`
	TotalAmount int64     `json:"totalAmount"`
	TotalFees   int64     `json:"totalFees"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
}
