/*
 * Copyright 2026 National Library of Norway.
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

package warcframe

const defaultBufferSize = 64 * 1024

type options struct {
	maxContentLength int64
	bufferSize       int
}

// Option configures the Reader.
type Option interface {
	apply(*options)
}

// EmptyOption does not alter the configuration. It can be embedded in
// another structure to build custom options.
type EmptyOption struct{}

func (EmptyOption) apply(*options) {}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(po *options) {
	fo.f(po)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func defaultOptions() options {
	return options{
		maxContentLength: 0,
		bufferSize:       defaultBufferSize,
	}
}

func newOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &o
}

// WithMaxContentLength sets the largest Content-Length the Reader accepts.
// A record declaring a larger content block fails as malformed before the block is allocated.
// A value less than or equal to zero means no limit.
// defaults to no limit
func WithMaxContentLength(size int64) Option {
	return newFuncOption(func(o *options) {
		o.maxContentLength = size
	})
}

// WithBufferSize sets the size of the read buffer placed in front of the input.
// Values less than 16 are ignored by bufio and replaced with its minimum.
// defaults to 64 KiB
func WithBufferSize(size int) Option {
	return newFuncOption(func(o *options) {
		o.bufferSize = size
	})
}
