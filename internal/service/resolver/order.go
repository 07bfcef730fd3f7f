package resolver

import (
	"strconv"
	"strings"
)

// firstVersionOutOfOrder returns the index of the first version that sorts
// before its predecessor, or 0 when the list is ascending.
func firstVersionOutOfOrder(versions []string) int {
	for i := 1; i < len(versions); i++ {
		if compareVersions(versions[i-1], versions[i]) > 0 {
			return i
		}
	}

	return 0
}

// firstBuildOutOfOrder is firstVersionOutOfOrder for build numbers.
func firstBuildOutOfOrder(builds []int) int {
	for i := 1; i < len(builds); i++ {
		if builds[i-1] > builds[i] {
			return i
		}
	}

	return 0
}

// compareVersions orders dotted identifiers such as "1.9.4" and "1.20.2".
// Numeric segments compare as numbers, others as strings. A shorter identifier
// sorts first unless the longer one continues with a tag, so
// "1.20" < "1.20.1" and "1.20.2-pre1" < "1.20.2".
func compareVersions(a, b string) int {
	left := splitVersion(a)
	right := splitVersion(b)

	for i := 0; i < len(left) && i < len(right); i++ {
		if c := compareSegment(left[i], right[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(left) < len(right):
		if isNumeric(right[len(left)]) {
			return -1
		}

		return 1
	case len(left) > len(right):
		if isNumeric(left[len(right)]) {
			return 1
		}

		return -1
	default:
		return 0
	}
}

func isNumeric(segment string) bool {
	_, err := strconv.Atoi(segment)

	return err == nil
}

func splitVersion(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

func compareSegment(a, b string) int {
	left, leftErr := strconv.Atoi(a)
	right, rightErr := strconv.Atoi(b)

	switch {
	case leftErr == nil && rightErr == nil:
		return left - right
	case leftErr == nil:
		// Release numbers sort after tags like "pre1" or "rc1".
		return 1
	case rightErr == nil:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
