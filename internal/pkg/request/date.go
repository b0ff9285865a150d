package request

import (
	"net/http"
	"time"

	"github.com/quietriver/campus-booking-backend/internal/pkg/apperror"
)

const dateLayout = "2006-01-02"

var errBadDate = apperror.New(http.StatusBadRequest, "date must be formatted YYYY-MM-DD")

// ParseDate converts an external date string into a typed value. All date
// input crosses this function before reaching any domain operation.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}
