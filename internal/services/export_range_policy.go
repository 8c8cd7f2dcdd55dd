package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange parses optional yyyy-MM-dd bounds. Either side may be
// absent; when both are present the range must not be inverted.
func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	fromRaw := strings.TrimSpace(rawFrom)
	toRaw := strings.TrimSpace(rawTo)

	var from *time.Time
	if fromRaw != "" {
		parsedFrom, err := ParseDayKey(fromRaw, location)
		if err != nil {
			return nil, nil, ErrExportFromDateInvalid
		}
		normalizedFrom := DateAtLocation(parsedFrom, location)
		from = &normalizedFrom
	}

	var to *time.Time
	if toRaw != "" {
		parsedTo, err := ParseDayKey(toRaw, location)
		if err != nil {
			return nil, nil, ErrExportToDateInvalid
		}
		normalizedTo := DateAtLocation(parsedTo, location)
		to = &normalizedTo
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}

	return from, to, nil
}
