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

package pack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/internal/digest"
	"github.com/nlnwa/warcframe/internal/naming"
	"github.com/nlnwa/warcframe/internal/timestamp"
	whatwg "github.com/nlnwa/whatwg-url/url"
	"github.com/prometheus/tsdb/fileutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	openFileSuffix        = ".open"
	applicationWarcFields = "application/warc-fields"
	warcinfoContent       = "software: warcframe\r\n" +
		"format: WARC File Format 1.1\r\n" +
		"conformsTo: http://iipc.github.io/warc-specifications/specifications/warc-format/warc-1.1/\r\n"
)

// Allow overriding of time.Now for tests
var now = time.Now

type conf struct {
	out         string
	dir         string
	prefix      string
	pattern     string
	date        string
	baseURI     string
	contentType string
	fileNames   []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "pack INPUT...",
		Short: "Pack files into a warc file as resource records",
		Long: `Pack files into a new warc file. The warc file starts with a warcinfo record followed by one
resource record for each input file.

The warc file is written with the suffix .open which is removed when all records are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing input file name")
			}
			c.fileNames = args
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVarP(&c.out, "out", "O", "", "name of the warc file, generated from --dir and --prefix if empty")
	cmd.Flags().StringVar(&c.dir, "dir", "", "directory of the generated warc file")
	cmd.Flags().StringVar(&c.prefix, "prefix", "", "prefix of the generated warc file name")
	cmd.Flags().StringVar(&c.pattern, "pattern", naming.DefaultPattern, "pattern of the generated warc file name. Parameters are prefix, ts, serial and host")
	cmd.Flags().StringVar(&c.date, "date", "", "WARC-Date of all records as a 14 digit timestamp (yyyyMMddHHmmss). Defaults to now")
	cmd.Flags().StringVar(&c.baseURI, "base-uri", "", "base uri used to create WARC-Target-URI from the input file names")
	cmd.Flags().StringVar(&c.contentType, "content-type", "application/octet-stream", "Content-Type of the resource records")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	if c.baseURI != "" {
		if _, err := whatwg.Parse(c.baseURI); err != nil {
			return fmt.Errorf("invalid base uri: %s: %w", c.baseURI, err)
		}
	}

	date := timestamp.UTC(now())
	if c.date != "" {
		t, err := timestamp.From14ToTime(c.date)
		if err != nil {
			return fmt.Errorf("invalid date: %s: %w", c.date, err)
		}
		date = t
	}

	path := c.out
	if path == "" {
		g := &naming.PatternNameGenerator{Directory: c.dir, Prefix: c.prefix, Pattern: c.pattern}
		var err error
		if path, err = g.NewPath(); err != nil {
			return err
		}
	}

	if err := pack(path, date, c); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, path)
	return err
}

// pack writes the warc file to path with the open file suffix and renames it when done.
func pack(path string, date time.Time, c *conf) (err error) {
	openName := path + openFileSuffix
	f, err := os.OpenFile(openName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
		if err != nil {
			_ = os.Remove(openName)
		}
	}()

	w := bufio.NewWriter(f)
	warcDate := timestamp.UTCW3cIso8601(date)
	warcinfoID, err := writeWarcinfo(w, filepath.Base(path), warcDate)
	if err != nil {
		return err
	}
	for _, fileName := range c.fileNames {
		if err = writeResource(w, fileName, warcinfoID, warcDate, c); err != nil {
			return fmt.Errorf("%s: %w", fileName, err)
		}
		log.Debugf("packed %s", fileName)
	}
	if err = w.Flush(); err != nil {
		return err
	}

	closing := f
	f = nil
	if err = closing.Close(); err != nil {
		return fmt.Errorf("failed to close file: %s: %w", openName, err)
	}
	if err = fileutil.Rename(openName, path); err != nil {
		return fmt.Errorf("failed to rename file: %s: %w", openName, err)
	}
	return nil
}

func writeWarcinfo(w io.Writer, fileName, warcDate string) (string, error) {
	id := warcframe.NewRecordID()

	header := warcframe.NewHeader()
	header.Set(warcframe.WarcType, warcframe.Warcinfo.String())
	header.Set(warcframe.WarcRecordID, id)
	header.Set(warcframe.WarcDate, warcDate)
	header.Set(warcframe.WarcFilename, fileName)
	header.Set(warcframe.ContentType, applicationWarcFields)
	header.Set(warcframe.ContentLength, strconv.Itoa(len(warcinfoContent)))

	record := warcframe.NewRecord(header, uint64(len(warcinfoContent)))
	record.Content = []byte(warcinfoContent)
	_, err := warcframe.WriteRecord(w, record, nil)
	return id, err
}

func writeResource(w io.Writer, fileName, warcinfoID, warcDate string, c *conf) error {
	f, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return errors.New("not a regular file")
	}

	d, err := digest.New("sha1", digest.Base32)
	if err != nil {
		return err
	}
	if _, err := io.Copy(d, f); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	size := fi.Size()
	header := warcframe.NewHeader()
	header.Set(warcframe.WarcType, warcframe.Resource.String())
	header.Set(warcframe.WarcRecordID, warcframe.NewRecordID())
	header.Set(warcframe.WarcDate, warcDate)
	header.Set(warcframe.WarcWarcinfoID, warcinfoID)
	if c.contentType != "" {
		header.Set(warcframe.ContentType, c.contentType)
	}
	header.Set(warcframe.ContentLength, strconv.FormatInt(size, 10))
	header.Set(warcframe.WarcBlockDigest, d.Format())
	if c.baseURI != "" {
		targetURI, err := resolveTargetURI(c.baseURI, filepath.Base(fileName))
		if err != nil {
			return err
		}
		header.Set(warcframe.WarcTargetURI, targetURI)
	}

	record := warcframe.NewRecord(header, uint64(size))
	if _, err := warcframe.WriteRecordWithoutBody(w, record); err != nil {
		return err
	}
	n, err := warcframe.WriteBody(w, record.ContentLength, f)
	if err != nil {
		return err
	}
	if n != size+4 {
		return fmt.Errorf("file size changed while packing: expected %d bytes, got %d", size, n-4)
	}
	return nil
}

func resolveTargetURI(baseURI, name string) (string, error) {
	u := strings.TrimSuffix(baseURI, "/") + "/" + url.PathEscape(name)
	if _, err := whatwg.Parse(u); err != nil {
		return "", err
	}
	return u, nil
}
