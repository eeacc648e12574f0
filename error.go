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
	"errors"
	"fmt"
)

// MalformedError is returned by the Reader when the input violates the WARC record framing.
type MalformedError struct {
	// Reason is a human readable description of the violation.
	Reason string
	line   int
}

func newMalformedError(reason string, pos *position) *MalformedError {
	return &MalformedError{Reason: reason, line: pos.lineNumber}
}

func newMalformedErrorf(pos *position, format string, param ...interface{}) *MalformedError {
	return &MalformedError{Reason: fmt.Sprintf(format, param...), line: pos.lineNumber}
}

func (e *MalformedError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("warcframe: %s at line %d", e.Reason, e.line)
	}
	return fmt.Sprintf("warcframe: %s", e.Reason)
}

// Line returns the line number, counted from the start of the record, where the violation was found.
// Zero means the violation is not tied to a single line.
func (e *MalformedError) Line() int {
	return e.line
}

// IsMalformed reports whether any error in err's chain is a *MalformedError.
func IsMalformed(err error) bool {
	var m *MalformedError
	return errors.As(err, &m)
}

// position tracks the line number within the record being parsed.
type position struct {
	lineNumber int
}

func (p *position) incrLineNumber() *position {
	p.lineNumber++
	return p
}
