// Package month содержит функции для работы с календарными месяцами в UTC,
// которые используются при построении статистики по проектам.
package month

import "time"

// LabelLayout формат подписи месяца, например "Jan 2024".
const LabelLayout = "Jan 2006"

// Start возвращает начало календарного месяца, в который попадает t, в UTC.
func Start(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Label возвращает подпись месяца, в который попадает t, в UTC.
func Label(t time.Time) string {
	return Start(t).Format(LabelLayout)
}

// DaysAgo возвращает момент, отстоящий от now на days суток назад, в UTC.
func DaysAgo(now time.Time, days int) time.Time {
	return now.UTC().AddDate(0, 0, -days)
}
