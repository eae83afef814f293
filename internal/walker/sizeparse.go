package walker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)?$`)

// ParseSize parses a unit-suffixed size string ("2MB", "512", "1.5 GB")
// into a byte count, rounded down to the nearest whole byte. An empty
// string means no limit (returns 0). Adapted nearly verbatim from the
// teacher's file_walker.go parseSizeString, which already implements
// this exactly.
func ParseSize(sizeStr string) (int64, error) {
	if sizeStr == "" {
		return 0, nil
	}

	matches := sizeRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(sizeStr)))
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	size, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value in size: %s", sizeStr)
	}

	unit := "B"
	if len(matches) > 2 && matches[2] != "" {
		unit = matches[2]
	}

	var multiplier float64
	switch unit {
	case "B":
		multiplier = 1
	case "KB":
		multiplier = 1024
	case "MB":
		multiplier = 1024 * 1024
	case "GB":
		multiplier = 1024 * 1024 * 1024
	case "TB":
		multiplier = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size unit: %s", unit)
	}

	return int64(size * multiplier), nil
}
