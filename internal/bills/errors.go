package bills

import (
	"errors"
	"fmt"
)

// AllowedExtensionsMessage is the exact wording shown when a receipt with a
// disallowed extension is selected. Kept byte for byte for parity with the
// legacy front end.
const AllowedExtensionsMessage = "Seuls les fichiers avec des extensions jpg, jpeg ou png sont autorisés."

// ErrNoFileUploaded is returned by OnSubmit when no receipt upload has
// completed for the draft. The store update is never attempted in that case.
var ErrNoFileUploaded = errors.New("no receipt has been uploaded for this bill")

// RecordFormatError reports a stored record whose date could not be shaped
// for display. The Lister logs it and keeps the record with its raw value; it
// never propagates to the caller.
type RecordFormatError struct {
	Value string
	Err   error
}

func (e *RecordFormatError) Error() string {
	return fmt.Sprintf("format bill date %q: %v", e.Value, e.Err)
}

func (e *RecordFormatError) Unwrap() error {
	return e.Err
}

// ValidationError reports a rejected user input, such as a receipt with a
// disallowed extension. It carries the user-facing message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StoreFetchError wraps a failed store list call. The whole listing fails;
// no partial result is returned.
type StoreFetchError struct {
	Err error
}

func (e *StoreFetchError) Error() string {
	return fmt.Sprintf("fetch bills: %v", e.Err)
}

func (e *StoreFetchError) Unwrap() error {
	return e.Err
}

// UploadError wraps a failed receipt upload. The submission returns to Idle
// and the user may select a file again.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload receipt: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// UpdateError wraps a failed bill update. The uploaded receipt reference is
// still valid, so the submission stays in Ready and may be retried.
type UpdateError struct {
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update bill: %v", e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
