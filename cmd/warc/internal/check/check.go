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

// Package check validates WARC files for the warc command.
package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/internal/digest"
)

// Checks selects the record checks done in addition to parsing.
type Checks struct {
	// Fields checks the syntax of well-known field values.
	Fields bool
	// Digest verifies WARC-Block-Digest against the content block.
	Digest bool
}

// Result is the outcome of validating one file.
type Result struct {
	FileName string
	// Records is the number of records parsed without framing errors.
	Records int
	// Err is the framing or I/O error that ended the file early.
	Err error
	// Invalid holds record check errors, keyed by record offset.
	Invalid map[int64]Validation
}

// OK reports whether the file had neither framing nor field errors.
func (r *Result) OK() bool {
	return r.Err == nil && len(r.Invalid) == 0
}

func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %d records, %v", r.FileName, r.Records, r.Err)
	}
	if len(r.Invalid) > 0 {
		return fmt.Sprintf("%s: %d records, %d invalid", r.FileName, r.Records, len(r.Invalid))
	}
	return fmt.Sprintf("%s: %d records", r.FileName, r.Records)
}

// File validates the WARC file fileName.
func File(ctx context.Context, fileName string, checks Checks, opts ...warcframe.Option) Result {
	f, err := os.Open(fileName)
	if err != nil {
		return Result{FileName: fileName, Err: err}
	}
	defer func() { _ = f.Close() }()

	res := Reader(ctx, f, checks, opts...)
	res.FileName = fileName
	return res
}

// Reader validates every record in r. Validation stops at the first framing error or when ctx is done.
func Reader(ctx context.Context, r io.Reader, checks Checks, opts ...warcframe.Option) Result {
	res := Result{}
	wr := warcframe.NewReader(r, opts...)
	for record, err := range wr.Records() {
		if err != nil {
			res.Err = fmt.Errorf("offset %d: %w", wr.Offset(), err)
			break
		}
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		res.Records++
		if v := Record(record, checks); len(v) > 0 {
			if res.Invalid == nil {
				res.Invalid = make(map[int64]Validation)
			}
			res.Invalid[wr.Offset()] = v
		}
	}
	return res
}

// Record runs the selected checks on a single record.
func Record(record *warcframe.Record, checks Checks) Validation {
	var v Validation
	if checks.Fields {
		v = append(v, Fields(record.Header)...)
	}
	if checks.Digest && record.Header.Has(warcframe.WarcBlockDigest) {
		d, err := digest.New(record.Header.Get(warcframe.WarcBlockDigest), digest.Base32)
		if err != nil {
			v.AddError(fmt.Errorf("%s: %w", warcframe.WarcBlockDigest, err))
		} else {
			_, _ = d.Write(record.Content)
			if err := d.Validate(); err != nil {
				v.AddError(fmt.Errorf("%s: %w", warcframe.WarcBlockDigest, err))
			}
		}
	}
	return v
}
