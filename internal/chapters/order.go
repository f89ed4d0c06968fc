package chapters

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

const introductionFile = "introduction"

var firstInteger = regexp.MustCompile(`\d+`)

// DerivePosition determines the reading order of a chapter from its source
// file name. An introduction file always sorts first; numbered files sort
// after it, shifted by one so "chapter-01.md" lands at position 2. Paths that
// carry no number cannot be ordered and are rejected.
func DerivePosition(sourcePath string) (int, error) {
	base := path.Base(strings.TrimSpace(sourcePath))
	name := strings.TrimSuffix(base, path.Ext(base))

	if strings.EqualFold(name, introductionFile) {
		return 1, nil
	}

	match := firstInteger.FindString(name)
	if match == "" {
		return 0, fmt.Errorf("%w: %s", ErrOrderUnknown, sourcePath)
	}

	number, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrOrderUnknown, sourcePath)
	}
	return number + 1, nil
}
