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

package ls

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/cmd/warc/internal/config"
	"github.com/nlnwa/warcframe/internal/timestamp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	fileNames []string
	id        []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "ls FILE...",
		Short: "List records from warc files",
		Long:  `List offset, type, date, id, content length and target uri of every record.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileNames = args
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringArrayVar(&c.id, "id", []string{}, "specify record ids to ls")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	for _, fileName := range c.fileNames {
		if err := readFile(out, c, fileName); err != nil {
			return err
		}
	}
	return nil
}

func readFile(out io.Writer, c *conf, fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	r := warcframe.NewReader(f, config.ReaderOptions()...)
	parsed, listed := 0, 0
	for record, err := range r.Records() {
		if err != nil {
			return fmt.Errorf("%s: record %d at offset %d: %w", fileName, parsed+1, r.Offset(), err)
		}
		parsed++
		if len(c.id) > 0 && !slices.Contains(c.id, record.Header.Get(warcframe.WarcRecordID)) {
			continue
		}
		listed++
		printRecord(out, r.Offset(), record)
	}
	log.Debugf("%s: listed %d of %d records", fileName, listed, parsed)
	return nil
}

func printRecord(out io.Writer, offset int64, record *warcframe.Record) {
	recordID := record.Header.Get(warcframe.WarcRecordID)
	targetURI := cropString(record.Header.Get(warcframe.WarcTargetURI), 100)
	date, err := timestamp.To14(record.Header.Get(warcframe.WarcDate))
	if err != nil {
		date = "-"
	}
	_, _ = fmt.Fprintf(out, "%9d %-9.9s %-14s %s %d %s\n", offset, record.Header.Get(warcframe.WarcType), date, recordID, record.ContentLength, targetURI)
}

func cropString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
