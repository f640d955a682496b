package leases

import (
	"fmt"
	"time"
)

// maxDueDay caps the payment day so every month of the schedule has a valid
// due date (February included).
const maxDueDay = 28

// ScheduledInstallment is one derived monthly obligation before persistence.
type ScheduledInstallment struct {
	Period  string // YYYY-MM of the month the due date falls in
	DueDate time.Time
	Amount  int64
}

// BuildSchedule derives the installment schedule for a lease. For i in
// [0, horizon), the due month is startDate's month plus i (calendar
// arithmetic, year rollover handled), the due day is min(paymentDay, 28),
// and the due date sits at 12:00 UTC. The month arithmetic is anchored at
// the first of the month so a start date late in a month can never overflow
// into the month after the intended one. Period is derived from the due
// month itself, which by construction is the month the clamped due date
// falls in.
func BuildSchedule(startDate time.Time, paymentDay int, amount int64, horizon int) []ScheduledInstallment {
	day := paymentDay
	if day < 1 {
		day = 1
	}
	if day > maxDueDay {
		day = maxDueDay
	}

	start := startDate.UTC()
	out := make([]ScheduledInstallment, 0, horizon)
	for i := 0; i < horizon; i++ {
		firstOfDueMonth := time.Date(start.Year(), start.Month()+time.Month(i), 1, 12, 0, 0, 0, time.UTC)
		dueDate := time.Date(firstOfDueMonth.Year(), firstOfDueMonth.Month(), day, 12, 0, 0, 0, time.UTC)
		out = append(out, ScheduledInstallment{
			Period:  fmt.Sprintf("%04d-%02d", firstOfDueMonth.Year(), int(firstOfDueMonth.Month())),
			DueDate: dueDate,
			Amount:  amount,
		})
	}
	return out
}
