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

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/cmd/warc/internal/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testRecord = "WARC/1.1\r\n" +
	"WARC-Record-ID: <urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>\r\n" +
	"WARC-Type: resource\r\n" +
	"Content-Length: 4\r\n" +
	"\r\n" +
	"test\r\n\r\n"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// createAtomically writes data next to name and renames it into place.
func createAtomically(t *testing.T, name, data string) {
	require.NoError(t, os.WriteFile(name+".open", []byte(data), 0644))
	require.NoError(t, os.Rename(name+".open", name))
}

func waitForResult(t *testing.T, results <-chan check.Result) check.Result {
	select {
	case res := <-results:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for validation result")
		return check.Result{}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, check.Checks{Fields: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan check.Result, 4)
	done := make(chan error)
	go func() {
		done <- w.Run(ctx, func(res check.Result) { results <- res })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("ignored"), 0644))

	good := filepath.Join(dir, "good.warc")
	createAtomically(t, good, testRecord+testRecord)
	res := waitForResult(t, results)
	assert.Equal(t, good, res.FileName)
	assert.Equal(t, 2, res.Records)
	assert.True(t, res.OK())

	bad := filepath.Join(dir, "bad.warc")
	createAtomically(t, bad, testRecord+"WARC/1.1\r\nContent-Length: x\r\n\r\n")
	res = waitForResult(t, results)
	assert.Equal(t, bad, res.FileName)
	assert.Equal(t, 1, res.Records)
	assert.True(t, warcframe.IsMalformed(res.Err))

	cancel()
	require.NoError(t, <-done)
	assert.Empty(t, results)
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), check.Checks{})
	assert.Error(t, err)
}
