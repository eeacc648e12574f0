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

// Package naming generates names for WARC files.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// patternVerb matches a verb referring to a named parameter, e.g. %04{serial}d. The flags and width are kept, the
// verb letter following the closing brace is left in place.
var patternVerb = regexp.MustCompile(`%([-+# 0]*\d*(?:\.\d+)?)\{(\w+)\}`)

// expand is like fmt.Sprintf, but every verb in pattern names its parameter, e.g.
//
//	expand("%{prefix}s%04{serial}d.warc", map[string]any{"prefix": "crawl-", "serial": 7})
//
// returns "crawl-0007.warc". A parameter missing from params or a verb without a name is an error.
func expand(pattern string, params map[string]any) (string, error) {
	var (
		args    []any
		index   = make(map[string]int)
		unknown []string
	)
	format := patternVerb.ReplaceAllStringFunc(pattern, func(verb string) string {
		m := patternVerb.FindStringSubmatch(verb)
		flags, key := m[1], m[2]
		i, ok := index[key]
		if !ok {
			v, ok := params[key]
			if !ok {
				unknown = append(unknown, key)
				return verb
			}
			args = append(args, v)
			i = len(args)
			index[key] = i
		}
		return "%" + flags + "[" + strconv.Itoa(i) + "]"
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown parameter in pattern %q: %s", pattern, strings.Join(unknown, ", "))
	}

	name := fmt.Sprintf(format, args...)
	if strings.Contains(name, "%!") {
		return "", fmt.Errorf("invalid pattern %q: %s", pattern, name)
	}
	return name, nil
}
