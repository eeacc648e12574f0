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

// Package config holds the configuration keys shared by the warc subcommands.
package config

import (
	"github.com/nlnwa/warcframe"
	"github.com/spf13/viper"
)

const (
	ConfigFile       = "config"
	LogLevel         = "log-level"
	LogFormatter     = "log-formatter"
	MaxContentLength = "max-content-length"
	BufferSize       = "buffer-size"
)

// ReaderOptions returns the reader options configured by flags, environment or config file.
func ReaderOptions() []warcframe.Option {
	var opts []warcframe.Option
	if n := viper.GetInt64(MaxContentLength); n > 0 {
		opts = append(opts, warcframe.WithMaxContentLength(n))
	}
	if n := viper.GetInt(BufferSize); n > 0 {
		opts = append(opts, warcframe.WithBufferSize(n))
	}
	return opts
}
