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
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordType(t *testing.T) {
	tests := []struct {
		name    string
		want    RecordType
		wantErr bool
	}{
		{"warcinfo", Warcinfo, false},
		{"response", Response, false},
		{"Resource", Resource, false},
		{"REQUEST", Request, false},
		{"metadata", Metadata, false},
		{"revisit", Revisit, false},
		{"conversion", Conversion, false},
		{"continuation", Continuation, false},
		{"General", General, false},
		{"generic", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecordType(tt.name)
			if tt.wantErr {
				assert.EqualError(t, err, "no record type matches: "+tt.name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordTypeString(t *testing.T) {
	for _, rt := range []RecordType{Warcinfo, Response, Resource, Request, Metadata, Revisit, Conversion, Continuation, General} {
		parsed, err := ParseRecordType(rt.String())
		require.NoError(t, err)
		assert.Equal(t, rt, parsed)
	}
	assert.Equal(t, "unknown", RecordType(3).String())
}

func TestRecord(t *testing.T) {
	header := NewHeader()
	header.Set(WarcType, "resource")
	header.Set(WarcRecordID, "<urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>")
	header.Set(ContentLength, "4")

	record := NewRecord(header, 4)
	assert.Equal(t, V1_1, record.Version)
	assert.Equal(t, uint64(4), record.ContentLength)
	assert.Empty(t, record.Content)
	assert.Equal(t, Resource, record.Type())
	assert.Equal(t, "WARC record: version: WARC/1.1, type: resource, id: <urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>",
		record.String())

	record.Content = []byte("test")
	b, err := io.ReadAll(record.Body())
	require.NoError(t, err)
	assert.Equal(t, "test", string(b))

	header.Set(WarcType, "general")
	assert.Equal(t, General, record.Type())
	header.Set(WarcType, "generic")
	assert.Equal(t, RecordType(0), record.Type())
	header.Del(WarcType)
	assert.Equal(t, RecordType(0), record.Type())
}

func TestNewRecordID(t *testing.T) {
	pattern := regexp.MustCompile(`^<urn:uuid:[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}>$`)
	id := NewRecordID()
	assert.Regexp(t, pattern, id)
	assert.NotEqual(t, id, NewRecordID())
}
