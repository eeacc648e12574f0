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
	"github.com/google/uuid"
)

// NewRecordID returns a new random record id suitable as value for the WARC-Record-ID field,
// e.g. <urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>.
//
// The Reader and the write functions never generate ids, callers must set WARC-Record-ID themselves.
func NewRecordID() string {
	return "<" + uuid.New().URN() + ">"
}
