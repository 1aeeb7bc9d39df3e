package models

// MonthlyBucket количество проектов, созданных в календарном месяце (UTC).
type MonthlyBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ProjectStats агрегированная статистика проектов пользователя.
type ProjectStats struct {
	TotalCount      int             `json:"total_count"`
	CountLast30Days int             `json:"count_last_30_days"`
	MonthlyBuckets  []MonthlyBucket `json:"monthly_buckets"`
}
