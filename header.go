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
	"sort"
)

// Header maps WARC field names to values.
//
// Each field name occurs at most once, setting a field that is already present replaces its value.
// The methods normalize the name they are given, which makes them case-insensitive.
type Header map[FieldName]string

// NewHeader creates an empty Header.
func NewHeader() Header {
	return make(Header, 16)
}

// Get gets the value associated with the given name.
// If the name doesn't exist, Get returns "".
func (h Header) Get(name FieldName) string {
	return h[NormalizeFieldName(string(name))]
}

// Lookup gets the value associated with the given name and reports whether it was present.
func (h Header) Lookup(name FieldName) (string, bool) {
	v, ok := h[NormalizeFieldName(string(name))]
	return v, ok
}

func (h Header) Has(name FieldName) bool {
	_, ok := h[NormalizeFieldName(string(name))]
	return ok
}

func (h Header) Set(name FieldName, value string) {
	h[NormalizeFieldName(string(name))] = value
}

func (h Header) Del(name FieldName) {
	delete(h, NormalizeFieldName(string(name)))
}

// Names returns the field names of h. Well known names come first in a fixed order, followed by the custom names
// sorted alphabetically.
func (h Header) Names() []FieldName {
	names := make([]FieldName, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iKnown := fieldOrder[names[i]]
		oj, jKnown := fieldOrder[names[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return names[i] < names[j]
		}
	})
	return names
}
