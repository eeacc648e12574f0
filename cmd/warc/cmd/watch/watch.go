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

package watch

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/nlnwa/warcframe"
	"github.com/nlnwa/warcframe/cmd/warc/internal/check"
	"github.com/nlnwa/warcframe/cmd/warc/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const warcExt = ".warc"

type conf struct {
	checks check.Checks
	dir    string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "watch DIR",
		Short: "Validate warc files as they are created in a directory",
		Long: `Validate every file with the extension .warc created in DIR until interrupted.

Files must appear complete, e.g. by being renamed into DIR the way pack does. Files being
written in place are validated as soon as they are created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing directory name")
			}
			c.dir = args[0]

			w, err := New(c.dir, c.checks, config.ReaderOptions()...)
			if err != nil {
				return err
			}
			log.Infof("Watching %s", c.dir)

			out := cmd.OutOrStdout()
			return w.Run(cmd.Context(), func(res check.Result) {
				check.Report(out, &res)
			})
		},
	}

	cmd.Flags().BoolVar(&c.checks.Fields, "fields", false, "check the syntax of well-known field values")
	cmd.Flags().BoolVar(&c.checks.Digest, "digest", false, "verify WARC-Block-Digest")

	return cmd
}

// Watcher validates warc files created in a directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	checks  check.Checks
	opts    []warcframe.Option
}

// New starts watching dir. Files created after New returns are reported by Run.
func New(dir string, checks check.Checks, opts ...warcframe.Option) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return &Watcher{watcher: watcher, checks: checks, opts: opts}, nil
}

// Run validates files until ctx is done and closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, handle func(check.Result)) error {
	defer func() { _ = w.watcher.Close() }()
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != fsnotify.Create || filepath.Ext(event.Name) != warcExt {
				continue
			}
			log.Debugf("created file: %v", event.Name)
			handle(check.File(ctx, event.Name, w.checks, w.opts...))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)
		}
	}
}
