package bills

import (
	"context"

	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

// Lister retrieves the session user's bills and shapes them for display. It
// holds no state between calls.
type Lister struct {
	store   Store
	session types.Session
	logger  logrus.FieldLogger
}

func NewLister(store Store, session types.Session, logger logrus.FieldLogger) *Lister {
	return &Lister{
		store:   store,
		session: session,
		logger:  logger,
	}
}

// GetBills fetches the user's bills and formats each record's date and
// status for display. The result has the same length and order as the store
// response. A record whose date cannot be formatted is logged and kept with
// its raw date, so one corrupted record never hides the rest. Only a failed
// fetch aborts the call, as a StoreFetchError.
func (l *Lister) GetBills(ctx context.Context) ([]types.BillRow, error) {
	raw, err := l.store.List(ctx, l.session.Email)
	if err != nil {
		return nil, &StoreFetchError{Err: err}
	}

	rows := make([]types.BillRow, 0, len(raw))
	for _, bill := range raw {
		row := types.BillRow{
			Bill:   bill,
			Date:   bill.Date,
			Status: FormatStatus(bill.Status),
		}

		formatted, err := FormatDate(bill.Date)
		if err != nil {
			// Some old records carry dates that predate any validation.
			l.logger.WithError(err).WithField("bill", bill).Warn("failed to format bill date")
		} else {
			row.Date = formatted
		}

		rows = append(rows, row)
	}

	return rows, nil
}
