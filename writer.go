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
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/nlnwa/warcframe/internal/countingreader"
)

// The write functions serialize records. They keep no state and return the number of bytes written together with
// any error from w. Bytes already written when an error occurs stay written.
//
// A record consists of a version line, the header, the content block and an empty line:
//
//	Version CRLF
//	Field-Name: Field-Value CRLF
//	CRLF
//	Content
//	CRLF
//	CRLF

// WriteVersion writes the version line.
func WriteVersion(w io.Writer, version string) (int64, error) {
	n, err := io.WriteString(w, version+crlf)
	return int64(n), err
}

// WriteHeader writes one line per field followed by the empty line ending the header block.
//
// Field names are written in canonical form and in the order returned by Header.Names. A value containing newlines
// is folded into continuation lines, so that the Reader parses it back to the same value.
func WriteHeader(w io.Writer, header Header) (int64, error) {
	var bytesWritten int64
	for _, name := range header.Names() {
		n, err := fmt.Fprintf(w, "%s: %s\r\n", name, foldValue(header[name]))
		bytesWritten += int64(n)
		if err != nil {
			return bytesWritten, err
		}
	}

	n, err := io.WriteString(w, crlf)
	bytesWritten += int64(n)
	return bytesWritten, err
}

// WriteBody copies at most contentLength bytes from body to w and ends the record.
//
// WriteBody does not check that body holds contentLength bytes. Making Content-Length agree with the content is
// the responsibility of the caller.
func WriteBody(w io.Writer, contentLength uint64, body io.Reader) (int64, error) {
	limit := int64(math.MaxInt64)
	if contentLength < math.MaxInt64 {
		limit = int64(contentLength)
	}

	bytesWritten, err := io.Copy(w, countingreader.NewLimited(body, limit))
	if err != nil {
		return bytesWritten, err
	}

	n, err := io.WriteString(w, crlfcrlf)
	bytesWritten += int64(n)
	return bytesWritten, err
}

// WriteRecord writes a complete record with the content block read from body.
// If body is nil, the record's own Content is written.
func WriteRecord(w io.Writer, record *Record, body io.Reader) (int64, error) {
	bytesWritten, err := WriteRecordWithoutBody(w, record)
	if err != nil {
		return bytesWritten, err
	}

	if body == nil {
		body = record.Body()
	}
	n, err := WriteBody(w, record.ContentLength, body)
	bytesWritten += n
	return bytesWritten, err
}

// WriteRecordWithoutBody writes the version line and the header. The caller continues with WriteBody, or writes
// the content block and the record end itself.
func WriteRecordWithoutBody(w io.Writer, record *Record) (int64, error) {
	bytesWritten, err := WriteVersion(w, record.Version)
	if err != nil {
		return bytesWritten, err
	}

	n, err := WriteHeader(w, record.Header)
	bytesWritten += n
	return bytesWritten, err
}

func foldValue(v string) string {
	if !strings.ContainsRune(v, lf) {
		return v
	}
	v = strings.ReplaceAll(v, crlf, string(lf))
	return strings.ReplaceAll(v, string(lf), crlf+string(sp))
}
