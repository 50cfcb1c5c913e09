package bills

import (
	"context"
	"errors"
	"strings"
	"testing"

	"billed/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeStore struct {
	bills   []*types.Bill
	listErr error

	createResult *CreateResult
	createErr    error
	createCalls  int
	lastUpload   FileUpload

	updateErr   error
	updateCalls int
	lastID      string
	lastBill    *types.Bill
}

func (f *fakeStore) List(_ context.Context, _ string) ([]*types.Bill, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bills, nil
}

func (f *fakeStore) Create(_ context.Context, _ string, file FileUpload) (*CreateResult, error) {
	f.createCalls++
	f.lastUpload = file
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeStore) Update(_ context.Context, id string, bill *types.Bill) (*types.Bill, error) {
	f.updateCalls++
	f.lastID = id
	f.lastBill = bill
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return bill, nil
}

func testSession() types.Session {
	return types.Session{Email: "employee@test.tld", UserType: types.UserTypeEmployee}
}

func TestGetBillsFormatsDatesAndStatuses(t *testing.T) {
	store := &fakeStore{bills: []*types.Bill{
		{ID: "1", Date: "2004-04-04", Status: types.BillStatusPending},
		{ID: "2", Date: "2001-01-01", Status: types.BillStatusRefused},
	}}

	lister := NewLister(store, testSession(), logrus.New())

	rows, err := lister.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills returned error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Date != "4 Avr. 04" {
		t.Errorf("rows[0].Date = %q, want %q", rows[0].Date, "4 Avr. 04")
	}
	if rows[0].Status != "En attente" {
		t.Errorf("rows[0].Status = %q, want %q", rows[0].Status, "En attente")
	}
	if rows[1].Date != "1 Janv. 01" {
		t.Errorf("rows[1].Date = %q, want %q", rows[1].Date, "1 Janv. 01")
	}
	if rows[1].Status != "Refusé" {
		t.Errorf("rows[1].Status = %q, want %q", rows[1].Status, "Refusé")
	}
}

func TestGetBillsKeepsCorruptedRecords(t *testing.T) {
	store := &fakeStore{bills: []*types.Bill{
		{ID: "1", Date: "2004-04-04", Status: types.BillStatusPending},
		{ID: "2", Date: "garbage", Status: types.BillStatusAccepted},
		{ID: "3", Date: "2002-02-02", Status: types.BillStatusRefused},
	}}

	logger, hook := test.NewNullLogger()
	lister := NewLister(store, testSession(), logger)

	rows, err := lister.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills returned error: %v", err)
	}

	// Cardinality and order survive the bad record.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, id := range []string{"1", "2", "3"} {
		if rows[i].Bill.ID != id {
			t.Errorf("rows[%d].Bill.ID = %q, want %q", i, rows[i].Bill.ID, id)
		}
	}

	// The bad record falls back to its raw date, still formatted status.
	if rows[1].Date != "garbage" {
		t.Errorf("rows[1].Date = %q, want raw %q", rows[1].Date, "garbage")
	}
	if rows[1].Status != "Accepté" {
		t.Errorf("rows[1].Status = %q, want %q", rows[1].Status, "Accepté")
	}

	warns := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warns++
		}
	}
	if warns != 1 {
		t.Errorf("expected exactly 1 warning, got %d", warns)
	}
}

func TestGetBillsEveryRecordCorrupted(t *testing.T) {
	store := &fakeStore{bills: []*types.Bill{
		{ID: "1", Date: "bad1", Status: types.BillStatusPending},
		{ID: "2", Date: "bad2", Status: types.BillStatusPending},
	}}

	logger, hook := test.NewNullLogger()
	lister := NewLister(store, testSession(), logger)

	rows, err := lister.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	warns := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warns++
		}
	}
	if warns != 2 {
		t.Errorf("expected 2 warnings, got %d", warns)
	}
}

func TestGetBillsStoreFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("error 404")}

	lister := NewLister(store, testSession(), logrus.New())

	rows, err := lister.GetBills(context.Background())
	if rows != nil {
		t.Errorf("expected nil rows on failure, got %v", rows)
	}

	var fetchErr *StoreFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected StoreFetchError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "error 404") {
		t.Errorf("error %q should surface the underlying message", err.Error())
	}
}
