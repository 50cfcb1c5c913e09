package bills

import (
	"fmt"
	"time"
	"unicode"

	"billed/pkg/types"
)

var frMonthsShort = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// FormatDate renders a stored yyyy-mm-dd date the way the legacy UI did,
// e.g. "2004-04-04" becomes "4 Avr. 04".
func FormatDate(value string) (string, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", &RecordFormatError{Value: value, Err: err}
	}

	month := []rune(frMonthsShort[t.Month()-1])
	month[0] = unicode.ToUpper(month[0])

	return fmt.Sprintf("%d %s %s", t.Day(), string(month), t.Format("06")), nil
}

// FormatStatus maps a stored status to its display label. Unknown statuses
// fall through unchanged.
func FormatStatus(status types.BillStatus) string {
	switch status {
	case types.BillStatusPending:
		return "En attente"
	case types.BillStatusAccepted:
		return "Accepté"
	case types.BillStatusRefused:
		return "Refusé"
	default:
		return string(status)
	}
}
