package enums

import (
	"fmt"
	"strings"
)

// RevenuePeriod is the calendar granularity used to bucket sales.
type RevenuePeriod string

const (
	RevenuePeriodDay   RevenuePeriod = "day"
	RevenuePeriodWeek  RevenuePeriod = "week"
	RevenuePeriodMonth RevenuePeriod = "month"
	RevenuePeriodYear  RevenuePeriod = "year"
)

var validRevenuePeriods = []RevenuePeriod{
	RevenuePeriodDay,
	RevenuePeriodWeek,
	RevenuePeriodMonth,
	RevenuePeriodYear,
}

func (p RevenuePeriod) String() string {
	return string(p)
}

func (p RevenuePeriod) IsValid() bool {
	for _, candidate := range validRevenuePeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseRevenuePeriod normalizes casing and whitespace before matching.
func ParseRevenuePeriod(value string) (RevenuePeriod, error) {
	normalized := RevenuePeriod(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid revenue period %q", value)
}
