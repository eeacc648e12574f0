/*
 * Copyright 2026 National Library of Norway.
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

package warcframe

import (
	"strings"
)

// FieldName is the name of a WARC header field.
//
// The well known field names are the constants declared below and carry the capitalization used by the
// WARC specification. Every other name is a custom field name. Custom field names produced by
// NormalizeFieldName are always lower case.
type FieldName string

const (
	// WARC header field name constants
	WarcRecordID              FieldName = "WARC-Record-ID"
	ContentLength             FieldName = "Content-Length"
	WarcDate                  FieldName = "WARC-Date"
	WarcType                  FieldName = "WARC-Type"
	ContentType               FieldName = "Content-Type"
	WarcConcurrentTo          FieldName = "WARC-Concurrent-To"
	WarcBlockDigest           FieldName = "WARC-Block-Digest"
	WarcPayloadDigest         FieldName = "WARC-Payload-Digest"
	WarcIPAddress             FieldName = "WARC-IP-Address"
	WarcRefersTo              FieldName = "WARC-Refers-To"
	WarcRefersToTargetURI     FieldName = "WARC-Refers-To-Target-URI"
	WarcRefersToDate          FieldName = "WARC-Refers-To-Date"
	WarcTargetURI             FieldName = "WARC-Target-URI"
	WarcTruncated             FieldName = "WARC-Truncated"
	WarcWarcinfoID            FieldName = "WARC-Warcinfo-ID"
	WarcFilename              FieldName = "WARC-Filename"
	WarcProfile               FieldName = "WARC-Profile"
	WarcIdentifiedPayloadType FieldName = "WARC-Identified-Payload-Type"
	WarcSegmentNumber         FieldName = "WARC-Segment-Number"
	WarcSegmentOriginID       FieldName = "WARC-Segment-Origin-ID"
	WarcSegmentTotalLength    FieldName = "WARC-Segment-Total-Length"
)

// wellKnownFields is also the order in which fields are serialized.
var wellKnownFields = []FieldName{
	WarcRecordID,
	ContentLength,
	WarcDate,
	WarcType,
	ContentType,
	WarcConcurrentTo,
	WarcBlockDigest,
	WarcPayloadDigest,
	WarcIPAddress,
	WarcRefersTo,
	WarcRefersToTargetURI,
	WarcRefersToDate,
	WarcTargetURI,
	WarcTruncated,
	WarcWarcinfoID,
	WarcFilename,
	WarcProfile,
	WarcIdentifiedPayloadType,
	WarcSegmentNumber,
	WarcSegmentOriginID,
	WarcSegmentTotalLength,
}

var (
	// Map lower case field name to well known field name
	lcFieldNames = make(map[string]FieldName, len(wellKnownFields))
	// Position of well known field name in wellKnownFields
	fieldOrder = make(map[FieldName]int, len(wellKnownFields))
)

func init() {
	for i, f := range wellKnownFields {
		lcFieldNames[strings.ToLower(string(f))] = f
		fieldOrder[f] = i
	}
}

// NormalizeFieldName maps a raw field name, as found in a header line, to a FieldName.
//
// Matching is case-insensitive. Names that are not well known are returned as custom field names holding the
// lower cased input, so the original casing of custom names is not kept.
func NormalizeFieldName(name string) FieldName {
	lcName := strings.ToLower(name)
	if f, ok := lcFieldNames[lcName]; ok {
		return f
	}
	return FieldName(lcName)
}

// String returns the canonical form of a well known field name and the stored text for a custom field name.
func (f FieldName) String() string {
	return string(f)
}

// IsCustom reports whether f is not one of the well known field names.
func (f FieldName) IsCustom() bool {
	_, ok := fieldOrder[f]
	return !ok
}
