package handlers

import (
	"context"
	"time"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
)

// ---- stubs to satisfy handlers.New() dependencies ----
//
// Each stub delegates to an optional func field so individual tests override
// only the method under test.

type stubMasterSvc struct {
	addRecipients   func(ctx context.Context, names []string) (int, error)
	renameRecipient func(ctx context.Context, id uint, newName string) error
	setRecipient    func(ctx context.Context, id uint, active bool) error
	deleteRecipient func(ctx context.Context, id uint) error
	listActiveRec   func(ctx context.Context) ([]domain.Recipient, error)
	listAllRec      func(ctx context.Context) ([]domain.Recipient, error)

	addItems   func(ctx context.Context, names []string) (int, error)
	renameItem func(ctx context.Context, id uint, newName string) error
	setItem    func(ctx context.Context, id uint, active bool) error
	deleteItem func(ctx context.Context, id uint) error
	listActive func(ctx context.Context) ([]domain.Item, error)
	listAll    func(ctx context.Context) ([]domain.Item, error)
}

func (s stubMasterSvc) AddRecipients(ctx context.Context, names []string) (int, error) {
	if s.addRecipients != nil {
		return s.addRecipients(ctx, names)
	}
	return 0, nil
}

func (s stubMasterSvc) RenameRecipient(ctx context.Context, id uint, newName string) error {
	if s.renameRecipient != nil {
		return s.renameRecipient(ctx, id, newName)
	}
	return nil
}

func (s stubMasterSvc) SetRecipientActive(ctx context.Context, id uint, active bool) error {
	if s.setRecipient != nil {
		return s.setRecipient(ctx, id, active)
	}
	return nil
}

func (s stubMasterSvc) DeleteRecipient(ctx context.Context, id uint) error {
	if s.deleteRecipient != nil {
		return s.deleteRecipient(ctx, id)
	}
	return nil
}

func (s stubMasterSvc) ListActiveRecipients(ctx context.Context) ([]domain.Recipient, error) {
	if s.listActiveRec != nil {
		return s.listActiveRec(ctx)
	}
	return nil, nil
}

func (s stubMasterSvc) ListAllRecipients(ctx context.Context) ([]domain.Recipient, error) {
	if s.listAllRec != nil {
		return s.listAllRec(ctx)
	}
	return nil, nil
}

func (s stubMasterSvc) AddItems(ctx context.Context, names []string) (int, error) {
	if s.addItems != nil {
		return s.addItems(ctx, names)
	}
	return 0, nil
}

func (s stubMasterSvc) RenameItem(ctx context.Context, id uint, newName string) error {
	if s.renameItem != nil {
		return s.renameItem(ctx, id, newName)
	}
	return nil
}

func (s stubMasterSvc) SetItemActive(ctx context.Context, id uint, active bool) error {
	if s.setItem != nil {
		return s.setItem(ctx, id, active)
	}
	return nil
}

func (s stubMasterSvc) DeleteItem(ctx context.Context, id uint) error {
	if s.deleteItem != nil {
		return s.deleteItem(ctx, id)
	}
	return nil
}

func (s stubMasterSvc) ListActiveItems(ctx context.Context) ([]domain.Item, error) {
	if s.listActive != nil {
		return s.listActive(ctx)
	}
	return nil, nil
}

func (s stubMasterSvc) ListAllItems(ctx context.Context) ([]domain.Item, error) {
	if s.listAll != nil {
		return s.listAll(ctx)
	}
	return nil, nil
}

type stubIssueSvc struct {
	record func(ctx context.Context, recipientID, itemID uint, qty int, note string, at time.Time) (uint, error)
	del    func(ctx context.Context, logID uint) error
}

func (s stubIssueSvc) Record(ctx context.Context, recipientID, itemID uint, qty int, note string, at time.Time) (uint, error) {
	if s.record != nil {
		return s.record(ctx, recipientID, itemID, qty, note, at)
	}
	return 0, nil
}

func (s stubIssueSvc) Delete(ctx context.Context, logID uint) error {
	if s.del != nil {
		return s.del(ctx, logID)
	}
	return nil
}

type stubReportSvc struct {
	listLogs     func(ctx context.Context, f repo.LogFilter) ([]domain.LedgerRow, error)
	logsForMonth func(ctx context.Context, month string) ([]domain.LedgerRow, error)
	months       func(ctx context.Context) ([]string, error)
}

func (s stubReportSvc) ListLogs(ctx context.Context, f repo.LogFilter) ([]domain.LedgerRow, error) {
	if s.listLogs != nil {
		return s.listLogs(ctx, f)
	}
	return nil, nil
}

func (s stubReportSvc) LogsForMonth(ctx context.Context, month string) ([]domain.LedgerRow, error) {
	if s.logsForMonth != nil {
		return s.logsForMonth(ctx, month)
	}
	return nil, nil
}

func (s stubReportSvc) Months(ctx context.Context) ([]string, error) {
	if s.months != nil {
		return s.months(ctx)
	}
	return nil, nil
}
