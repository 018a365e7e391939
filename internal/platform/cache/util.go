package cache

import (
	"strings"
	"time"
)

// TTLPolicy returns how long an entry written at now stays valid.
type TTLPolicy func(now time.Time) time.Duration

// Fixed expires entries d after they are written.
func Fixed(d time.Duration) TTLPolicy {
	return func(time.Time) time.Duration { return d }
}

// UntilDaily expires entries at the next hour:00 in loc, the time a daily ingest refreshes the store.
func UntilDaily(hour int, loc *time.Location) TTLPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return func(now time.Time) time.Duration {
		return TimeUntilNext(hour, now.In(loc))
	}
}

// TimeUntilNext は now のタイムゾーンにおける次の hour 時00分までの期間を返します。
func TimeUntilNext(hour int, now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())

	// 今日の指定時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
