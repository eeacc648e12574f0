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
	"bufio"
	"errors"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/nlnwa/warcframe/internal/countingreader"
	log "github.com/sirupsen/logrus"
)

// endOfStream signals that the input ended cleanly before the first byte of a new record.
var endOfStream = errors.New("EOS")

// State is the state of a Reader.
type State uint8

const (
	// StateReady means the Reader will try to parse another record.
	StateReady State = iota
	// StateFailed means a record could not be parsed. The Reader returns no more records.
	StateFailed
	// StateExhausted means the input ended at a record boundary.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Reader parses a stream of WARC records.
//
// The Reader is not restartable. The first error other than the clean end of input is returned once, after
// that the Reader is failed and returns no more records even if the input contains more well formed data.
//
// A Reader must not be used from more than one goroutine at a time.
type Reader struct {
	opts           *options
	countingReader *countingreader.Reader
	bufferedReader *bufio.Reader
	state          State
	offset         int64
}

// NewReader creates a Reader reading from r.
//
// The Reader buffers its input, so it might read past the last record it returns.
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := newOptions(opts...)
	c := countingreader.New(r)
	return &Reader{
		opts:           o,
		countingReader: c,
		bufferedReader: bufio.NewReaderSize(c, o.bufferSize),
		state:          StateReady,
	}
}

// State returns the current state of the Reader.
func (r *Reader) State() State {
	return r.state
}

// Offset returns the position in the input, counted from where the Reader started, of the record most recently
// returned by Next. After a failure it is the position of the record which could not be parsed.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Next parses the next record.
//
// At the end of input, or after a previous call has returned an error, Next returns nil and io.EOF.
// Framing violations are returned as *MalformedError, and so is input ending inside the header block. Errors from
// the input are returned as is, except that input ending inside the content block or trailer is reported as
// io.ErrUnexpectedEOF.
func (r *Reader) Next() (*Record, error) {
	if r.state != StateReady {
		return nil, io.EOF
	}

	r.offset = r.countingReader.N() - int64(r.bufferedReader.Buffered())
	record, err := r.parseRecord()
	switch {
	case err == nil:
		return record, nil
	case err == endOfStream:
		r.state = StateExhausted
		log.Debugf("warcframe: end of input at offset %d", r.offset)
		return nil, io.EOF
	default:
		r.state = StateFailed
		log.WithError(err).Debugf("warcframe: failed parsing record at offset %d", r.offset)
		return nil, err
	}
}

// Records returns an iterator over the remaining records.
//
// An error is yielded at most once, together with a nil record, and ends the sequence.
func (r *Reader) Records() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			record, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) parseRecord() (*Record, error) {
	pos := &position{}

	// Find WARC version
	version, err := r.bufferedReader.ReadString(lf)
	pos.incrLineNumber()
	if err != nil {
		if err != io.EOF {
			return nil, err
		}
		if version == "" {
			return nil, endOfStream
		}
	}
	version = rtrim(version)
	if !strings.HasPrefix(version, versionPrefix) {
		return nil, newMalformedErrorf(pos, "unknown WARC version: %s", version)
	}

	header, err := r.parseHeader(pos)
	if err != nil {
		return nil, err
	}

	contentLength, err := r.resolveContentLength(header)
	if err != nil {
		return nil, err
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(r.bufferedReader, content); err != nil {
		return nil, unexpected(err)
	}

	var trailer [len(crlfcrlf)]byte
	if _, err := io.ReadFull(r.bufferedReader, trailer[:]); err != nil {
		return nil, unexpected(err)
	}
	if string(trailer[:]) != crlfcrlf {
		return nil, newMalformedError("no double linefeed after record content", &position{})
	}

	return &Record{
		Version:       version,
		Header:        header,
		ContentLength: contentLength,
		Content:       content,
	}, nil
}

// parseHeader reads header lines up to and including the empty line ending the header block.
//
// A line starting with space or tab continues the value of the previous field. The continuation is trimmed and
// joined to the value with a newline.
func (r *Reader) parseHeader(pos *position) (Header, error) {
	header := NewHeader()

	var (
		name       FieldName
		value      string
		hasPending bool
	)

	for {
		line, err := r.bufferedReader.ReadString(lf)
		pos.incrLineNumber()
		if err == io.EOF {
			return nil, newMalformedError("invalid header field", pos)
		}
		if err != nil {
			return nil, err
		}
		if line == crlf {
			break
		}

		if line[0] == sp || line[0] == ht {
			if !hasPending {
				return nil, newMalformedError("invalid header block", pos)
			}
			value += string(lf) + strings.TrimSpace(line)
			continue
		}

		if hasPending {
			header[name] = value
			hasPending = false
		}

		line = rtrim(line)
		i := strings.IndexByte(line, ':')
		if i < 0 {
			return nil, newMalformedErrorf(pos, "invalid header field: %q", line)
		}
		name = NormalizeFieldName(strings.TrimSpace(line[:i]))
		value = strings.TrimSpace(line[i+1:])
		hasPending = true
	}

	if hasPending {
		header[name] = value
	}
	return header, nil
}

func (r *Reader) resolveContentLength(header Header) (uint64, error) {
	pos := &position{}
	v, ok := header[ContentLength]
	if !ok {
		return 0, newMalformedError("Content-Length is missing", pos)
	}
	// A single plus sign is accepted in front of the number
	length, err := strconv.ParseUint(strings.TrimPrefix(v, "+"), 10, 64)
	if err != nil {
		return 0, newMalformedErrorf(pos, "Content-Length is not a number: %q", v)
	}
	if r.opts.maxContentLength > 0 && length > uint64(r.opts.maxContentLength) {
		return 0, newMalformedErrorf(pos, "Content-Length %d exceeds the maximum of %d", length, r.opts.maxContentLength)
	}
	if length > math.MaxInt {
		return 0, newMalformedErrorf(pos, "Content-Length %d is too large", length)
	}
	return length, nil
}

// rtrim removes trailing white space, including the line ending, without copying.
func rtrim(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// unexpected converts io.EOF to io.ErrUnexpectedEOF. It is used for the content block and trailer, where running
// out of input is a failure and not the end of the stream.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
