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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSinkFull = errors.New("sink full")

// limitedWriter accepts limit bytes and then fails.
type limitedWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		return remaining, errSinkFull
	}
	return w.buf.Write(p)
}

func TestWriteVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	n, err := WriteVersion(buf, V1_1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "WARC/1.1\r\n", buf.String())
}

func TestWriteHeader(t *testing.T) {
	tests := []struct {
		name   string
		header Header
		want   string
	}{
		{
			"empty",
			Header{},
			"\r\n",
		},
		{
			"canonical order",
			Header{"x-custom": "v", WarcType: "resource", ContentLength: "4"},
			"Content-Length: 4\r\nWARC-Type: resource\r\nx-custom: v\r\n\r\n",
		},
		{
			"multi-line value is folded",
			Header{WarcRecordID: "multiline\nuuid value"},
			"WARC-Record-ID: multiline\r\n uuid value\r\n\r\n",
		},
		{
			"carriage return in multi-line value",
			Header{WarcRecordID: "a\r\nb\nc"},
			"WARC-Record-ID: a\r\n b\r\n c\r\n\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			n, err := WriteHeader(buf, tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, int64(len(tt.want)), n)
		})
	}
}

func TestWriteBody(t *testing.T) {
	tests := []struct {
		name          string
		contentLength uint64
		body          string
		want          string
	}{
		{"exact", 4, "test", "test\r\n\r\n"},
		{"body longer than content length", 4, "testtest", "test\r\n\r\n"},
		{"body shorter than content length", 4, "te", "te\r\n\r\n"},
		{"empty", 0, "test", "\r\n\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			n, err := WriteBody(buf, tt.contentLength, strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, int64(len(tt.want)), n)
		})
	}
}

func TestWriteRecord(t *testing.T) {
	header := NewHeader()
	header.Set(WarcType, "resource")
	header.Set(ContentLength, "4")
	record := NewRecord(header, 4)

	want := "WARC/1.1\r\nContent-Length: 4\r\nWARC-Type: resource\r\n\r\ntest\r\n\r\n"

	buf := &bytes.Buffer{}
	n, err := WriteRecord(buf, record, strings.NewReader("test"))
	require.NoError(t, err)
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)

	// Without a body stream the record's own content is written
	record.Content = []byte("test")
	buf.Reset()
	_, err = WriteRecord(buf, record, nil)
	require.NoError(t, err)
	assert.Equal(t, want, buf.String())
}

func TestWriteRecordWithoutBody(t *testing.T) {
	header := NewHeader()
	header.Set(WarcType, "resource")
	header.Set(ContentLength, "4")
	record := NewRecord(header, 4)

	buf := &bytes.Buffer{}
	n, err := WriteRecordWithoutBody(buf, record)
	require.NoError(t, err)
	assert.Equal(t, "WARC/1.1\r\nContent-Length: 4\r\nWARC-Type: resource\r\n\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	_, err = WriteBody(buf, record.ContentLength, strings.NewReader("test"))
	require.NoError(t, err)

	parsed, err := NewReader(buf).Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("test"), parsed.Content)
}

func TestWriteRecordSinkError(t *testing.T) {
	header := NewHeader()
	header.Set(WarcType, "resource")
	header.Set(ContentLength, "4")
	record := NewRecord(header, 4)

	for _, limit := range []int{0, 5, 10, 20, 52} {
		w := &limitedWriter{limit: limit}
		n, err := WriteRecord(w, record, strings.NewReader("test"))
		assert.ErrorIs(t, err, errSinkFull, "limit %d", limit)
		assert.Equal(t, int64(limit), n, "bytes already written are reported")
		assert.Equal(t, limit, w.buf.Len())
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	r := NewReader(strings.NewReader(warcinfoRecord + requestRecord))

	var original []*Record
	buf := &bytes.Buffer{}
	for record, err := range r.Records() {
		require.NoError(t, err)
		original = append(original, record)
		_, err = WriteRecord(buf, record, nil)
		require.NoError(t, err)
	}
	require.Len(t, original, 2)

	var parsed []*Record
	for record, err := range NewReader(buf).Records() {
		require.NoError(t, err)
		parsed = append(parsed, record)
	}
	assert.Equal(t, original, parsed)
}

func TestWriteReadRoundTripMultiLineValue(t *testing.T) {
	header := NewHeader()
	header.Set(WarcRecordID, "multiline\nuuid value")
	header.Set("x-empty-line", "first\n\nthird")
	header.Set(ContentLength, "0")
	record := NewRecord(header, 0)

	buf := &bytes.Buffer{}
	_, err := WriteRecord(buf, record, nil)
	require.NoError(t, err)

	parsed, err := NewReader(buf).Next()
	require.NoError(t, err)
	assert.Equal(t, "multiline\nuuid value", parsed.Header.Get(WarcRecordID))
	assert.Equal(t, "first\n\nthird", parsed.Header.Get("x-empty-line"))
}
