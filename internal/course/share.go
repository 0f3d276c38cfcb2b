package course

import (
	"encoding/base64"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/mrz1836/timelapse/internal/errors"
)

// sharePrefix versions the share-code format.
const sharePrefix = "tl1."

// EncodeShare packs a course into a URL-safe share code.
func EncodeShare(c Course) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode course")
	}
	return sharePrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShare unpacks a share code. Any malformed input, including a code
// that decodes to an invalid course, wraps ErrInvalidCourseData.
func DecodeShare(code string) (Course, error) {
	code = strings.TrimSpace(code)
	payload, ok := strings.CutPrefix(code, sharePrefix)
	if !ok {
		return Course{}, errors.Wrap(errors.ErrInvalidCourseData, "unrecognised share code format")
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Course{}, errors.Wrap(errors.ErrInvalidCourseData, "share code is not valid base64")
	}

	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return Course{}, errors.Wrap(errors.ErrInvalidCourseData, "share code payload is not valid JSON")
	}
	if err := c.Validate(); err != nil {
		return Course{}, err
	}
	return c, nil
}
