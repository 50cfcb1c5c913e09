package server

import (
	"net/http"

	"billed/internal/bills"
	"billed/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleGetDashboard(w http.ResponseWriter, r *http.Request) {

	data := &types.DashboardPageData{
		BasePageData: types.BasePageData{Title: "Tableau de bord"},
	}

	raw, err := s.billsRepo.AllBills(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch bills for dashboard")
		data.Error = "Impossible de charger les notes de frais."
	}

	rows := make([]types.BillRow, 0, len(raw))
	for _, bill := range raw {
		row := types.BillRow{
			Bill:   bill,
			Date:   bill.Date,
			Status: bills.FormatStatus(bill.Status),
		}

		formatted, err := bills.FormatDate(bill.Date)
		if err != nil {
			s.logger.WithError(err).WithField("bill", bill).Warn("failed to format bill date")
		} else {
			row.Date = formatted
		}

		rows = append(rows, row)
	}
	data.Bills = rows

	err = s.renderTemplate(w, r, "page.dashboard", data)
	if err != nil {
		s.logger.WithError(err).Error("failed to render dashboard page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostDashboardStatus(w http.ResponseWriter, r *http.Request) {

	billID := flow.Param(r.Context(), "id")

	var status types.BillStatus
	switch r.FormValue("status") {
	case "accepted":
		status = types.BillStatusAccepted
	case "refused":
		status = types.BillStatusRefused
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	err := s.billsRepo.UpdateStatus(r.Context(), billID, status)
	if err != nil {
		s.logger.WithError(err).WithField("bill_id", billID).Error("failed to update bill status")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
