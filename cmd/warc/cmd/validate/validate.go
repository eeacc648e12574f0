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

package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/nlnwa/warcframe/cmd/warc/internal/check"
	"github.com/nlnwa/warcframe/cmd/warc/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type conf struct {
	checks      check.Checks
	concurrency int
	fileNames   []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate the record framing of warc files",
		Long: `Validate the record framing of warc files. Each file is parsed until the end or until the first
framing error. Optionally the syntax of well-known fields and the block digests are checked too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileNames = args
			return runE(cmd.Context(), cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().BoolVar(&c.checks.Fields, "fields", false, "check the syntax of well-known field values")
	cmd.Flags().BoolVar(&c.checks.Digest, "digest", false, "verify WARC-Block-Digest")
	cmd.Flags().IntVarP(&c.concurrency, "concurrency", "j", runtime.NumCPU(), "number of files validated concurrently")

	return cmd
}

func runE(ctx context.Context, out io.Writer, c *conf) error {
	if ctx == nil {
		ctx = context.Background()
	}
	limit := c.concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]check.Result, len(c.fileNames))
	opts := config.ReaderOptions()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, fileName := range c.fileNames {
		g.Go(func() error {
			log.Debugf("validating %s", fileName)
			results[i] = check.File(ctx, fileName, c.checks, opts...)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i := range results {
		check.Report(out, &results[i])
		if !results[i].OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(results))
	}
	return nil
}
