package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
