package server

import (
	"errors"
	"net/http"

	"billed/internal"
	"billed/internal/bills"
	"billed/pkg/types"
)

// Receipts top out well under this; the limit just bounds memory per request.
const maxReceiptUploadBytes = 10 << 20

func (s *Service) handleGetBills(w http.ResponseWriter, r *http.Request) {

	session, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch session from context")
		s.internalServerError(w)
		return
	}

	data := &types.BillsPageData{
		BasePageData: types.BasePageData{Title: "Mes notes de frais"},
	}

	lister := bills.NewLister(s.billStore, session, s.logger)
	rows, err := lister.GetBills(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list bills")
		data.Error = err.Error()
	}
	data.Bills = rows

	err = s.renderTemplate(w, r, "page.bills", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render bills page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetNewBill(w http.ResponseWriter, r *http.Request) {

	data := &types.NewBillPageData{
		BasePageData: types.BasePageData{Title: "Envoyer une note de frais"},
		ExpenseTypes: types.ExpenseTypes,
	}

	// A draft cookie means the upload phase already ran; show the file name
	// so the user knows the receipt is attached.
	draft, err := s.draftFromCookie(r)
	if err == nil && draft.Complete() {
		data.FileName = draft.FileName
	}

	err = s.renderTemplate(w, r, "page.bill-new", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render new bill page")
		s.internalServerError(w)
		return
	}
}

// handlePostNewBillFile runs the upload phase: validate the chosen receipt,
// push it to storage, create the draft record, and persist the draft
// reference in a cookie for the later submit request.
func (s *Service) handlePostNewBillFile(w http.ResponseWriter, r *http.Request) {

	session, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch session from context")
		s.internalServerError(w)
		return
	}

	data := &types.NewBillPageData{
		BasePageData: types.BasePageData{Title: "Envoyer une note de frais"},
		ExpenseTypes: types.ExpenseTypes,
	}

	err = r.ParseMultipartForm(maxReceiptUploadBytes)
	if err != nil {
		s.logger.WithError(err).Error("failed to parse multipart form")
		data.Error = "Le fichier n'a pas pu être lu."
		s.renderNewBill(w, r, data)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.logger.WithError(err).Error("no file in upload request")
		data.Error = "Veuillez choisir un fichier."
		s.renderNewBill(w, r, data)
		return
	}
	defer file.Close()

	submission := bills.NewSubmission(s.billStore, session, nil, s.logger)

	err = submission.OnFileSelected(r.Context(), bills.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		var validationErr *bills.ValidationError
		if errors.As(err, &validationErr) {
			// Invalid extension also voids any earlier valid selection.
			s.clearDraftCookie(w)
			data.Error = validationErr.Message
			s.renderNewBill(w, r, data)
			return
		}

		s.logger.WithError(err).Error("failed to upload receipt")
		data.Error = "L'envoi du justificatif a échoué. Veuillez réessayer."
		s.renderNewBill(w, r, data)
		return
	}

	draft := submission.Draft()
	err = s.setDraftCookie(w, draft)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode draft cookie")
		s.internalServerError(w)
		return
	}

	data.FileName = draft.FileName
	s.renderNewBill(w, r, data)
}

// handlePostNewBill runs the submit phase: rebuild the submission from the
// draft cookie and complete the record with the form fields.
func (s *Service) handlePostNewBill(w http.ResponseWriter, r *http.Request) {

	session, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch session from context")
		s.internalServerError(w)
		return
	}

	data := &types.NewBillPageData{
		BasePageData: types.BasePageData{Title: "Envoyer une note de frais"},
		ExpenseTypes: types.ExpenseTypes,
	}

	err = r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse new bill form")
		data.Error = "Le formulaire n'a pas pu être lu."
		s.renderNewBill(w, r, data)
		return
	}

	var fields bills.FormFields
	err = decoder.Decode(&fields, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode new bill form")
		data.Error = "Le formulaire n'a pas pu être lu."
		s.renderNewBill(w, r, data)
		return
	}

	navigate := func(route string) {
		s.clearDraftCookie(w)
		http.Redirect(w, r, s.routePath(route), http.StatusSeeOther)
	}

	submission := bills.NewSubmission(s.billStore, session, navigate, s.logger)

	draft, err := s.draftFromCookie(r)
	if err == nil {
		submission.Resume(draft)
	}
	data.FileName = draft.FileName

	err = submission.OnSubmit(r.Context(), fields)
	if err != nil {
		if errors.Is(err, bills.ErrNoFileUploaded) {
			data.Error = "Veuillez d'abord joindre un justificatif."
			s.renderNewBill(w, r, data)
			return
		}

		// The uploaded receipt is still valid; keep the draft cookie so the
		// user can resubmit.
		s.logger.WithError(err).Error("failed to submit bill")
		data.Error = "L'envoi de la note de frais a échoué. Veuillez réessayer."
		s.renderNewBill(w, r, data)
		return
	}

	// The navigator has already written the redirect.
}

func (s *Service) renderNewBill(w http.ResponseWriter, r *http.Request, data *types.NewBillPageData) {
	err := s.renderTemplate(w, r, "page.bill-new", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render new bill page")
		s.internalServerError(w)
	}
}

func (s *Service) setDraftCookie(w http.ResponseWriter, draft bills.Draft) error {
	encoded, err := s.cookie.Encode(internal.COOKIE_BILL_DRAFT_NAME, draft)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_BILL_DRAFT_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/bills/new",
		MaxAge:   30 * 60,
	})

	return nil
}

func (s *Service) draftFromCookie(r *http.Request) (bills.Draft, error) {
	cookie, err := r.Cookie(internal.COOKIE_BILL_DRAFT_NAME)
	if err != nil {
		return bills.Draft{}, err
	}

	var draft bills.Draft
	err = s.cookie.Decode(internal.COOKIE_BILL_DRAFT_NAME, cookie.Value, &draft)
	if err != nil {
		return bills.Draft{}, err
	}

	return draft, nil
}

func (s *Service) clearDraftCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_BILL_DRAFT_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/bills/new",
		MaxAge:   -1,
	})
}
