package usecase

import (
	"regexp"
	"strconv"

	"playlist-duration/domain/model"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// The pattern is searched, not anchored: a day component ("P1DT2H") is ignored.
var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts a YouTube contentDetails.duration value such as
// "PT1H2M3S" into seconds. Missing components count as zero and text that does
// not match the pattern yields 0.
func ParseDuration(text string) int64 {
	match := isoDurationPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	hours := parseDurationComponent(match[1])
	minutes := parseDurationComponent(match[2])
	seconds := parseDurationComponent(match[3])
	return hours*secondsPerHour + minutes*secondsPerMinute + seconds
}

func parseDurationComponent(digits string) int64 {
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatDuration splits totalSeconds into days, hours, minutes and seconds.
// Negative input is treated as zero.
func FormatDuration(totalSeconds int64) model.DurationBreakdown {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return model.DurationBreakdown{
		Days:    totalSeconds / secondsPerDay,
		Hours:   totalSeconds % secondsPerDay / secondsPerHour,
		Minutes: totalSeconds % secondsPerHour / secondsPerMinute,
		Seconds: totalSeconds % secondsPerMinute,
	}
}
