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
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	lf       = '\n'       // Newline
	sp       = ' '        // Space
	ht       = '\t'       // Tab
	crlf     = "\r\n"     // Carriage return, Newline
	crlfcrlf = "\r\n\r\n" // Carriage return, Newline, Carriage return, Newline
)

const (
	// WARC versions
	V1_0 = "WARC/1.0"
	V1_1 = "WARC/1.1"

	versionPrefix = "WARC/1."
)

type RecordType uint16

const (
	// WARC record types
	Warcinfo     RecordType = 1
	Response     RecordType = 2
	Resource     RecordType = 4
	Request      RecordType = 8
	Metadata     RecordType = 16
	Revisit      RecordType = 32
	Conversion   RecordType = 64
	Continuation RecordType = 128
	// General is not a WARC 1.1 type, but is written by some older tools.
	General RecordType = 256
)

func (rt RecordType) String() string {
	switch rt {
	case Warcinfo:
		return "warcinfo"
	case Response:
		return "response"
	case Resource:
		return "resource"
	case Request:
		return "request"
	case Metadata:
		return "metadata"
	case Revisit:
		return "revisit"
	case Conversion:
		return "conversion"
	case Continuation:
		return "continuation"
	case General:
		return "general"
	default:
		return "unknown"
	}
}

// ParseRecordType returns the RecordType named by s. Matching is case-insensitive.
func ParseRecordType(s string) (RecordType, error) {
	switch strings.ToLower(s) {
	case "warcinfo":
		return Warcinfo, nil
	case "response":
		return Response, nil
	case "resource":
		return Resource, nil
	case "request":
		return Request, nil
	case "metadata":
		return Metadata, nil
	case "revisit":
		return Revisit, nil
	case "conversion":
		return Conversion, nil
	case "continuation":
		return Continuation, nil
	case "general":
		return General, nil
	default:
		return 0, fmt.Errorf("no record type matches: %s", s)
	}
}

// Record is a single WARC record.
//
// A Record returned by the Reader always has len(Content) == ContentLength. A Record built for writing usually
// has no Content, the block is then supplied as a separate stream to WriteRecord.
type Record struct {
	// Version is the version line without line ending, e.g. WARC/1.1.
	Version string
	Header  Header
	// ContentLength is the size of the content block in bytes.
	ContentLength uint64
	// Content is the content block.
	Content []byte
}

// NewRecord creates a WARC/1.1 record without content.
func NewRecord(header Header, contentLength uint64) *Record {
	return &Record{
		Version:       V1_1,
		Header:        header,
		ContentLength: contentLength,
	}
}

// Type returns the record type named by the WARC-Type field or zero if the field is missing or unknown.
func (r *Record) Type() RecordType {
	rt, _ := ParseRecordType(r.Header.Get(WarcType))
	return rt
}

// Body returns a reader over the content block.
func (r *Record) Body() io.Reader {
	return bytes.NewReader(r.Content)
}

func (r *Record) String() string {
	return fmt.Sprintf("WARC record: version: %s, type: %s, id: %s", r.Version, r.Type(), r.Header.Get(WarcRecordID))
}
