package bills

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

// State is the position of a submission in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateUploading
	StateReady
	StatePersisting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateReady:
		return "ready"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Draft is the transient state of one in-progress bill: the store key
// assigned at upload time and the durable receipt reference. It belongs to
// exactly one Submission and is discarded with it.
type Draft struct {
	BillID   string
	FileURL  string
	FileName string
}

// Complete reports whether the upload phase has finished for this draft.
func (d Draft) Complete() bool {
	return d.BillID != "" && d.FileURL != "" && d.FileName != ""
}

// FormFields are the values collected from the new bill form at submit
// time. Pct defaults to 20 when absent, matching the legacy form.
type FormFields struct {
	Type       string `form:"expense-type"`
	Name       string `form:"expense-name"`
	Amount     int64  `form:"amount"`
	Date       string `form:"datepicker"`
	VAT        *int64 `form:"vat"`
	Pct        *int64 `form:"pct"`
	Commentary string `form:"commentary"`
}

// Submission drives one new bill from file selection to persistence:
//
//	Idle -> Uploading -> Ready -> Persisting -> Done
//
// An invalid file selection is a self-loop on Idle. A failed upload returns
// to Idle with no draft fields set. A failed update returns to Ready, since
// the uploaded receipt reference is still valid and the user may resubmit.
type Submission struct {
	store    Store
	session  types.Session
	navigate Navigator
	logger   logrus.FieldLogger

	mu    sync.Mutex
	state State
	draft Draft
}

func NewSubmission(store Store, session types.Session, navigate Navigator, logger logrus.FieldLogger) *Submission {
	return &Submission{
		store:    store,
		session:  session,
		navigate: navigate,
		logger:   logger,
		state:    StateIdle,
	}
}

// Resume places the submission directly in Ready with the draft of an
// earlier completed upload phase. Incomplete drafts are ignored.
func (s *Submission) Resume(draft Draft) {
	if !draft.Complete() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
	s.state = StateReady
}

// State returns the current lifecycle position.
func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the current draft fields.
func (s *Submission) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func allowedExtension(name string) bool {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "jpg", "jpeg", "png":
		return true
	}
	return false
}

// OnFileSelected validates the chosen receipt and, when accepted, uploads it
// to the store. On success the draft holds the returned file reference and
// the store key used by the later update phase. A disallowed extension
// clears the draft and returns a ValidationError carrying
// AllowedExtensionsMessage, so no stale selection remains.
//
// Uploads are serialized per instance; when selections overlap, the last
// writer wins on the draft fields.
func (s *Submission) OnFileSelected(ctx context.Context, file FileUpload) error {
	if !allowedExtension(file.Name) {
		s.mu.Lock()
		s.draft = Draft{}
		s.state = StateIdle
		s.mu.Unlock()
		return &ValidationError{Message: AllowedExtensionsMessage}
	}

	s.mu.Lock()
	s.state = StateUploading
	s.mu.Unlock()

	created, err := s.store.Create(ctx, s.session.Email, file)
	if err != nil {
		s.mu.Lock()
		s.draft = Draft{}
		s.state = StateIdle
		s.mu.Unlock()
		return &UploadError{Err: err}
	}

	s.mu.Lock()
	s.draft = Draft{
		BillID:   created.Key,
		FileURL:  created.FileURL,
		FileName: file.Name,
	}
	s.state = StateReady
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"bill_id":   created.Key,
		"file_name": file.Name,
	}).Debug("receipt uploaded")

	return nil
}

// OnSubmit assembles the full bill from the form fields, the draft's
// receipt reference and the session owner, then updates the store record
// addressed by the draft key. It requires a completed upload and returns
// ErrNoFileUploaded otherwise, without calling the store. On success the
// navigation collaborator receives RouteBills and the submission is Done.
func (s *Submission) OnSubmit(ctx context.Context, fields FormFields) error {
	s.mu.Lock()
	if !s.draft.Complete() {
		s.mu.Unlock()
		return ErrNoFileUploaded
	}
	draft := s.draft
	s.state = StatePersisting
	s.mu.Unlock()

	pct := int64(20)
	if fields.Pct != nil {
		pct = *fields.Pct
	}

	bill := &types.Bill{
		ID:       draft.BillID,
		Email:    s.session.Email,
		Type:     fields.Type,
		Name:     fields.Name,
		Amount:   fields.Amount,
		Date:     fields.Date,
		VAT:      fields.VAT,
		Pct:      &pct,
		FileURL:  &draft.FileURL,
		FileName: &draft.FileName,
	}
	if fields.Commentary != "" {
		bill.Commentary = &fields.Commentary
	}

	if _, err := s.store.Update(ctx, draft.BillID, bill); err != nil {
		s.mu.Lock()
		s.state = StateReady
		s.mu.Unlock()
		return &UpdateError{Err: err}
	}

	s.mu.Lock()
	s.state = StateDone
	s.mu.Unlock()

	s.logger.WithField("bill_id", draft.BillID).Info("bill submitted")

	if s.navigate != nil {
		s.navigate(RouteBills)
	}

	return nil
}
