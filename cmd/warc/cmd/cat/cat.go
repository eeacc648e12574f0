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

package cat

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/cmd/warc/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	offset      int64
	recordCount int
	headerOnly  bool
	fileName    string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "cat FILE",
		Short: "Write records from a warc file to stdout",
		Long: `Write records from a warc file to stdout.

With --offset, printing starts at the record at that byte offset and only one record is
printed unless --record-count says otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			if c.offset >= 0 && c.recordCount == 0 {
				c.recordCount = 1
			}
			if c.offset < 0 {
				c.offset = 0
			}
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().Int64VarP(&c.offset, "offset", "o", -1, "record offset")
	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to show")
	cmd.Flags().BoolVar(&c.headerOnly, "header-only", false, "only write the version line and header of each record")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	f, err := os.Open(c.fileName)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if c.offset > 0 {
		if _, err := f.Seek(c.offset, io.SeekStart); err != nil {
			return err
		}
	}

	r := warcframe.NewReader(f, config.ReaderOptions()...)
	count := 0
	for record, err := range r.Records() {
		if err != nil {
			return fmt.Errorf("%s: offset %d: %w", c.fileName, c.offset+r.Offset(), err)
		}
		if c.headerOnly {
			_, err = warcframe.WriteRecordWithoutBody(out, record)
		} else {
			_, err = warcframe.WriteRecord(out, record, nil)
		}
		if err != nil {
			return err
		}
		count++

		if c.recordCount > 0 && count >= c.recordCount {
			break
		}
	}
	log.Debugf("%s: wrote %d records", c.fileName, count)
	return nil
}
