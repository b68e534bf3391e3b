package domain

import (
	"context"
	"errors"
)

type ReportRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type CreditLedgerRequest struct {
	From    string `form:"from"`
	To      string `form:"to"`
	GroupBy string `form:"group_by"`
}

type Service interface {
	Labor(context.Context, ReportRequest) ([]LaborRow, error)
	Client(context.Context, ReportRequest) ([]ClientRow, error)
	ProfitLoss(context.Context, ReportRequest) (ProfitLossReport, error)
	CreditLedger(context.Context, CreditLedgerRequest) ([]LedgerRow, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidBucket       = errors.New("invalid_bucket")
)

// ParseBucket validates a caller-supplied grouping granularity.
func ParseBucket(value string) (Bucket, error) {
	switch bucket := Bucket(value); bucket {
	case BucketDay, BucketWeek, BucketMonth, BucketYear:
		return bucket, nil
	default:
		return "", ErrInvalidBucket
	}
}
