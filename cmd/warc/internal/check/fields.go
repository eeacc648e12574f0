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
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/internal/timestamp"
	"github.com/nlnwa/whatwg-url/url"
)

type valueParser func(value string) error

var (
	pURI = func(value string) error {
		_, err := url.Parse(value)
		return err
	}
	pIP = func(value string) error {
		if ip := net.ParseIP(value); ip == nil {
			return fmt.Errorf("illegal ip address: %s", value)
		}
		return nil
	}
	pTime = func(value string) error {
		_, err := timestamp.ParseW3cIso8601(value)
		return err
	}
	pWarcType = func(value string) error {
		_, err := warcframe.ParseRecordType(value)
		return err
	}
	pWarcID = func(value string) error {
		v := strings.TrimSuffix(strings.TrimPrefix(value, "<"), ">")
		if len(value) != len(v)+2 {
			return errors.New("WARC id should be encapsulated by <>")
		}
		_, err := url.Parse(v)
		return err
	}
	pInt = func(value string) error {
		_, err := strconv.Atoi(value)
		return err
	}
	pLong = func(value string) error {
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	}
	pTruncReason = func(value string) error {
		switch value {
		case "length", "time", "disconnect", "unspecified":
			return nil
		}
		return fmt.Errorf("unknown truncation reason: %s", value)
	}
)

// Fields without an entry are not checked.
var fieldParsers = map[warcframe.FieldName]valueParser{
	warcframe.WarcRecordID:           pWarcID,
	warcframe.WarcDate:               pTime,
	warcframe.WarcType:               pWarcType,
	warcframe.WarcConcurrentTo:       pWarcID,
	warcframe.WarcIPAddress:          pIP,
	warcframe.WarcRefersTo:           pWarcID,
	warcframe.WarcRefersToTargetURI:  pURI,
	warcframe.WarcRefersToDate:       pTime,
	warcframe.WarcTargetURI:          pURI,
	warcframe.WarcTruncated:          pTruncReason,
	warcframe.WarcWarcinfoID:         pWarcID,
	warcframe.WarcProfile:            pURI,
	warcframe.WarcSegmentNumber:      pInt,
	warcframe.WarcSegmentOriginID:    pWarcID,
	warcframe.WarcSegmentTotalLength: pLong,
}

// Fields checks the syntax of the well-known fields of a record header.
func Fields(header warcframe.Header) Validation {
	var v Validation
	for _, name := range header.Names() {
		p, ok := fieldParsers[name]
		if !ok {
			continue
		}
		if err := p(header[name]); err != nil {
			v.AddError(fmt.Errorf("%s: %w", name, err))
		}
	}
	return v
}
