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

package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nlnwa/warcframe/internal/timestamp"
)

// DefaultPattern is used when PatternNameGenerator.Pattern is empty.
const DefaultPattern = "%{prefix}s%{ts}s-%04{serial}d-%{host}s.warc"

// Allow overriding of time.Now for tests
var now = time.Now

// PatternNameGenerator creates file names from a pattern with the named parameters prefix, ts, serial and host.
type PatternNameGenerator struct {
	Directory string // Directory to store warcfiles. Defaults to the empty string
	Prefix    string // Prefix available to be used in pattern. Defaults to the empty string
	Serial    int32  // Serial number available for use in pattern. It is atomically increased with every generated file name.
	Pattern   string // Pattern for generated file name. Defaults to DefaultPattern
}

// NewName returns the directory and the file name of the next file.
// It fails if the pattern refers to other parameters than prefix, ts, serial and host.
func (g *PatternNameGenerator) NewName() (string, string, error) {
	pattern := g.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	params := map[string]any{
		"prefix": g.Prefix,
		"ts":     timestamp.UTC14(now()),
		"serial": atomic.AddInt32(&g.Serial, 1),
		"host":   GetHostNameOrIP(),
	}

	name, err := expand(pattern, params)
	if err != nil {
		return "", "", err
	}
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", "", fmt.Errorf("pattern %q does not give a file name: %q", pattern, name)
	}
	return g.Directory, name, nil
}

// NewPath returns the next file name joined with the directory.
func (g *PatternNameGenerator) NewPath() (string, error) {
	dir, name, err := g.NewName()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
