package bills

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestSubmission(store Store, navigate Navigator) *Submission {
	return NewSubmission(store, testSession(), navigate, logrus.New())
}

func TestOnFileSelectedUploadsValidFile(t *testing.T) {
	store := &fakeStore{createResult: &CreateResult{
		FileURL: "https://mockurl.com/file.jpg",
		Key:     "12345",
	}}

	sub := newTestSubmission(store, nil)

	err := sub.OnFileSelected(context.Background(), FileUpload{
		Name:        "file.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("fake image bytes"),
	})
	if err != nil {
		t.Fatalf("OnFileSelected returned error: %v", err)
	}

	if store.createCalls != 1 {
		t.Fatalf("expected 1 create call, got %d", store.createCalls)
	}
	if store.lastUpload.Name != "file.jpg" {
		t.Errorf("uploaded name = %q, want %q", store.lastUpload.Name, "file.jpg")
	}

	if got := sub.State(); got != StateReady {
		t.Errorf("state = %v, want %v", got, StateReady)
	}

	draft := sub.Draft()
	if draft.BillID != "12345" {
		t.Errorf("draft.BillID = %q, want %q", draft.BillID, "12345")
	}
	if draft.FileURL != "https://mockurl.com/file.jpg" {
		t.Errorf("draft.FileURL = %q, want %q", draft.FileURL, "https://mockurl.com/file.jpg")
	}
	if draft.FileName != "file.jpg" {
		t.Errorf("draft.FileName = %q, want %q", draft.FileName, "file.jpg")
	}
}

func TestOnFileSelectedExtensionCaseInsensitive(t *testing.T) {
	store := &fakeStore{createResult: &CreateResult{FileURL: "u", Key: "k"}}
	sub := newTestSubmission(store, nil)

	for _, name := range []string{"photo.JPG", "photo.Jpeg", "photo.PNG"} {
		err := sub.OnFileSelected(context.Background(), FileUpload{Name: name, Content: strings.NewReader("x")})
		if err != nil {
			t.Errorf("OnFileSelected(%q) returned error: %v", name, err)
		}
	}

	if store.createCalls != 3 {
		t.Errorf("expected 3 create calls, got %d", store.createCalls)
	}
}

func TestOnFileSelectedRejectsDisallowedExtension(t *testing.T) {
	store := &fakeStore{createResult: &CreateResult{FileURL: "u", Key: "k"}}
	sub := newTestSubmission(store, nil)

	err := sub.OnFileSelected(context.Background(), FileUpload{
		Name:    "file.pdf",
		Content: strings.NewReader("x"),
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if validationErr.Message != AllowedExtensionsMessage {
		t.Errorf("message = %q, want %q", validationErr.Message, AllowedExtensionsMessage)
	}

	if store.createCalls != 0 {
		t.Errorf("store.Create called %d times for an invalid file", store.createCalls)
	}
	if got := sub.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
}

func TestInvalidSelectionClearsPreviousDraft(t *testing.T) {
	store := &fakeStore{createResult: &CreateResult{FileURL: "https://mockurl.com/file.jpg", Key: "12345"}}
	sub := newTestSubmission(store, nil)

	ctx := context.Background()
	if err := sub.OnFileSelected(ctx, FileUpload{Name: "file.jpg", Content: strings.NewReader("x")}); err != nil {
		t.Fatalf("valid selection failed: %v", err)
	}

	if err := sub.OnFileSelected(ctx, FileUpload{Name: "file.pdf", Content: strings.NewReader("x")}); err == nil {
		t.Fatal("expected error for pdf selection")
	}

	if draft := sub.Draft(); draft.Complete() {
		t.Errorf("draft should be cleared after invalid selection, got %+v", draft)
	}

	// Submitting now must not touch the store.
	err := sub.OnSubmit(ctx, FormFields{Type: "Transports", Name: "vol", Amount: 100, Date: "2020-01-01"})
	if !errors.Is(err, ErrNoFileUploaded) {
		t.Fatalf("expected ErrNoFileUploaded, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Errorf("store.Update called %d times after cleared draft", store.updateCalls)
	}
}

func TestOnFileSelectedUploadFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("error 500")}
	sub := newTestSubmission(store, nil)

	err := sub.OnFileSelected(context.Background(), FileUpload{Name: "file.png", Content: strings.NewReader("x")})

	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %T: %v", err, err)
	}

	if got := sub.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
	if draft := sub.Draft(); draft != (Draft{}) {
		t.Errorf("draft should be empty after failed upload, got %+v", draft)
	}
}

func TestOnSubmitBeforeUpload(t *testing.T) {
	store := &fakeStore{}
	sub := newTestSubmission(store, nil)

	err := sub.OnSubmit(context.Background(), FormFields{Type: "Transports", Name: "vol", Amount: 100, Date: "2020-01-01"})
	if !errors.Is(err, ErrNoFileUploaded) {
		t.Fatalf("expected ErrNoFileUploaded, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Errorf("store.Update called %d times without an upload", store.updateCalls)
	}
	if got := sub.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
}

func TestOnSubmitPersistsBill(t *testing.T) {
	store := &fakeStore{createResult: &CreateResult{
		FileURL: "https://mockurl.com/file.jpg",
		Key:     "12345",
	}}

	var navigated []string
	sub := newTestSubmission(store, func(route string) {
		navigated = append(navigated, route)
	})

	ctx := context.Background()
	if err := sub.OnFileSelected(ctx, FileUpload{Name: "file.jpg", Content: strings.NewReader("x")}); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	vat := int64(70)
	err := sub.OnSubmit(ctx, FormFields{
		Type:       "Transports",
		Name:       "Vol Paris Londres",
		Amount:     348,
		Date:       "2020-05-24",
		VAT:        &vat,
		Commentary: "déplacement client",
	})
	if err != nil {
		t.Fatalf("OnSubmit returned error: %v", err)
	}

	if store.updateCalls != 1 {
		t.Fatalf("expected 1 update call, got %d", store.updateCalls)
	}
	if store.lastID != "12345" {
		t.Errorf("update key = %q, want %q", store.lastID, "12345")
	}

	bill := store.lastBill
	if bill.Email != "employee@test.tld" {
		t.Errorf("bill.Email = %q, want session owner", bill.Email)
	}
	if bill.Type != "Transports" || bill.Name != "Vol Paris Londres" || bill.Amount != 348 {
		t.Errorf("bill fields not carried over: %+v", bill)
	}
	if bill.Pct == nil || *bill.Pct != 20 {
		t.Errorf("bill.Pct should default to 20, got %v", bill.Pct)
	}
	if bill.FileURL == nil || *bill.FileURL != "https://mockurl.com/file.jpg" {
		t.Errorf("bill.FileURL = %v, want draft file url", bill.FileURL)
	}
	if bill.FileName == nil || *bill.FileName != "file.jpg" {
		t.Errorf("bill.FileName = %v, want draft file name", bill.FileName)
	}
	if bill.Status != "" {
		t.Errorf("submission must not set status, got %q", bill.Status)
	}

	if got := sub.State(); got != StateDone {
		t.Errorf("state = %v, want %v", got, StateDone)
	}
	if len(navigated) != 1 || navigated[0] != RouteBills {
		t.Errorf("navigated = %v, want [%s]", navigated, RouteBills)
	}
}

func TestOnSubmitExplicitPct(t *testing.T) {
	store := &fakeStore{createResult: &CreateResult{FileURL: "u", Key: "k"}}
	sub := newTestSubmission(store, nil)

	ctx := context.Background()
	if err := sub.OnFileSelected(ctx, FileUpload{Name: "file.jpg", Content: strings.NewReader("x")}); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	pct := int64(10)
	if err := sub.OnSubmit(ctx, FormFields{Type: "Transports", Name: "n", Amount: 1, Date: "2020-01-01", Pct: &pct}); err != nil {
		t.Fatalf("OnSubmit returned error: %v", err)
	}

	if store.lastBill.Pct == nil || *store.lastBill.Pct != 10 {
		t.Errorf("bill.Pct = %v, want 10", store.lastBill.Pct)
	}
}

func TestOnSubmitUpdateFailureAllowsRetry(t *testing.T) {
	store := &fakeStore{
		createResult: &CreateResult{FileURL: "u", Key: "k"},
		updateErr:    errors.New("error 500"),
	}

	navigated := 0
	sub := newTestSubmission(store, func(string) { navigated++ })

	ctx := context.Background()
	if err := sub.OnFileSelected(ctx, FileUpload{Name: "file.jpg", Content: strings.NewReader("x")}); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	fields := FormFields{Type: "Transports", Name: "n", Amount: 1, Date: "2020-01-01"}

	err := sub.OnSubmit(ctx, fields)
	var updateErr *UpdateError
	if !errors.As(err, &updateErr) {
		t.Fatalf("expected UpdateError, got %T: %v", err, err)
	}

	if got := sub.State(); got != StateReady {
		t.Errorf("state = %v, want %v for retry", got, StateReady)
	}
	if navigated != 0 {
		t.Errorf("navigate called %d times on failure", navigated)
	}

	// Second attempt succeeds against the same draft key.
	store.updateErr = nil
	if err := sub.OnSubmit(ctx, fields); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if store.updateCalls != 2 {
		t.Errorf("expected 2 update calls, got %d", store.updateCalls)
	}
	if store.lastID != "k" {
		t.Errorf("retry used key %q, want %q", store.lastID, "k")
	}
	if navigated != 1 {
		t.Errorf("navigate called %d times, want 1", navigated)
	}
}

func TestResume(t *testing.T) {
	store := &fakeStore{}
	sub := newTestSubmission(store, nil)

	sub.Resume(Draft{BillID: "12345", FileURL: "https://mockurl.com/file.jpg", FileName: "file.jpg"})

	if got := sub.State(); got != StateReady {
		t.Fatalf("state = %v, want %v", got, StateReady)
	}

	if err := sub.OnSubmit(context.Background(), FormFields{Type: "Transports", Name: "n", Amount: 1, Date: "2020-01-01"}); err != nil {
		t.Fatalf("OnSubmit after resume failed: %v", err)
	}
	if store.lastID != "12345" {
		t.Errorf("update key = %q, want resumed draft key", store.lastID)
	}
}

func TestResumeIgnoresIncompleteDraft(t *testing.T) {
	sub := newTestSubmission(&fakeStore{}, nil)

	sub.Resume(Draft{BillID: "12345"})

	if got := sub.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateUploading, "uploading"},
		{StateReady, "ready"},
		{StatePersisting, "persisting"},
		{StateDone, "done"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
