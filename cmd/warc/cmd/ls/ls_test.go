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

package ls

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nlnwa/warcframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecords = "WARC/1.1\r\n" +
	"WARC-Record-ID: <urn:uuid:1>\r\n" +
	"WARC-Type: warcinfo\r\n" +
	"Content-Length: 4\r\n" +
	"\r\n" +
	"test\r\n\r\n" +
	"WARC/1.1\r\n" +
	"WARC-Record-ID: <urn:uuid:2>\r\n" +
	"WARC-Date: 2017-03-06T04:03:53Z\r\n" +
	"WARC-Type: resource\r\n" +
	"WARC-Target-URI: http://example.com/\r\n" +
	"Content-Length: 0\r\n" +
	"\r\n" +
	"\r\n\r\n"

func writeFile(t *testing.T, data string) string {
	fileName := filepath.Join(t.TempDir(), "test.warc")
	require.NoError(t, os.WriteFile(fileName, []byte(data), 0644))
	return fileName
}

func TestLs(t *testing.T) {
	fileName := writeFile(t, testRecords)

	out := &bytes.Buffer{}
	cmd := NewCommand()
	cmd.SetOut(out)
	cmd.SetArgs([]string{fileName})
	require.NoError(t, cmd.Execute())

	want := "        0 warcinfo  -              <urn:uuid:1> 4 \n" +
		"       90 resource  20170306040353 <urn:uuid:2> 0 http://example.com/\n"
	assert.Equal(t, want, out.String())
}

func TestLsFilterID(t *testing.T) {
	fileName := writeFile(t, testRecords)

	out := &bytes.Buffer{}
	cmd := NewCommand()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--id", "<urn:uuid:2>", fileName})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "       90 resource  20170306040353 <urn:uuid:2> 0 http://example.com/\n", out.String())
}

func TestLsStopsAtFirstError(t *testing.T) {
	fileName := writeFile(t, testRecords[:100])

	out := &bytes.Buffer{}
	err := runE(out, &conf{fileNames: []string{fileName}})
	assert.True(t, warcframe.IsMalformed(err))
	assert.Contains(t, err.Error(), "record 2 at offset 90")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	fileName = writeFile(t, testRecords+"WARC/1.1\r\nContent-Length: 10\r\n\r\ntest")
	out.Reset()
	err = runE(out, &conf{fileNames: []string{fileName}, id: []string{"<urn:uuid:2>"}})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), fmt.Sprintf("record 3 at offset %d", len(testRecords)), "records left out by --id are counted")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

func TestLsMissingFileName(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{})
	assert.EqualError(t, cmd.Execute(), "missing file name")
}

func TestCropString(t *testing.T) {
	assert.Equal(t, "short", cropString("short", 10))
	assert.Equal(t, "abcdefg...", cropString("abcdefghijklmnop", 10))
}
