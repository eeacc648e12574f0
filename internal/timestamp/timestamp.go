/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package timestamp converts between time.Time and the date formats found in WARC files.
package timestamp

import (
	"fmt"
	"time"
)

const (
	layout14      = "20060102150405"
	layoutW3cDate = "2006-01-02T15:04:05Z07:00"
)

// Layouts accepted by ParseW3cIso8601, most precise first. Fractional seconds are accepted by the first layout.
var w3cLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
	"2006-01",
	"2006",
}

// UTC returns t in UTC with monotonic clock reading stripped.
func UTC(t time.Time) time.Time {
	return t.UTC().Round(0)
}

// UTC14 formats t as a 14 digit timestamp (yyyyMMddHHmmss) in UTC.
func UTC14(t time.Time) string {
	return t.UTC().Format(layout14)
}

// UTCW3cIso8601 formats t as a W3C ISO-8601 date with second precision in UTC. This is the format of WARC-Date.
func UTCW3cIso8601(t time.Time) string {
	return t.UTC().Format(layoutW3cDate)
}

// ParseW3cIso8601 parses any of the W3C ISO-8601 precisions allowed for WARC-Date.
func ParseW3cIso8601(s string) (time.Time, error) {
	for _, layout := range w3cLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("not a W3C ISO-8601 date: %q", s)
}

// To14 converts a W3C ISO-8601 date to a 14 digit timestamp.
func To14(s string) (string, error) {
	t, err := ParseW3cIso8601(s)
	if err != nil {
		return "", err
	}
	return UTC14(t), nil
}

// From14ToTime parses a 14 digit timestamp.
func From14ToTime(s string) (time.Time, error) {
	return time.Parse(layout14, s)
}
