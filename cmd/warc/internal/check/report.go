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

package check

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// Report writes a status line for res followed by one line per record check error.
func Report(out io.Writer, res *Result) {
	if res.OK() {
		_, _ = okColor.Fprint(out, "OK  ")
	} else {
		_, _ = failColor.Fprint(out, "FAIL")
	}
	_, _ = fmt.Fprintf(out, " %s\n", res)

	for _, offset := range slices.Sorted(maps.Keys(res.Invalid)) {
		for _, err := range res.Invalid[offset] {
			_, _ = fmt.Fprintf(out, "     offset %d: %v\n", offset, err)
		}
	}
}
