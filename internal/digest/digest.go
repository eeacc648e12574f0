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

// Package digest computes and verifies the labelled digests used in WARC-Block-Digest and WARC-Payload-Digest.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

type Encoding uint8

const (
	unknown Encoding = 0
	Base16  Encoding = 1
	Base32  Encoding = 2
	Base64  Encoding = 3
)

func (e Encoding) encode(sum []byte) string {
	switch e {
	case Base16:
		return strings.ToUpper(hex.EncodeToString(sum))
	case Base32:
		return base32.StdEncoding.EncodeToString(sum)
	case Base64:
		return base64.StdEncoding.EncodeToString(sum)
	default:
		return string(sum)
	}
}

func detectEncoding(algorithm, digest string, defaultEncoding Encoding) Encoding {
	var size int
	switch algorithm {
	case "md5":
		if len(digest) == 32 {
			// Encoded length is the same for base16 and base32, but only base32 is padded
			if strings.HasSuffix(digest, "=") {
				return Base32
			}
			return Base16
		}
		size = md5.Size
	case "sha1":
		size = sha1.Size
	case "sha256":
		size = sha256.Size
	case "sha512":
		size = sha512.Size
	}
	switch len(digest) {
	case size * 2:
		return Base16
	case base32.StdEncoding.EncodedLen(size):
		return Base32
	case base64.StdEncoding.EncodedLen(size):
		return Base64
	}
	return defaultEncoding
}

// Digest is a running hash labelled with its algorithm.
type Digest struct {
	hash.Hash
	algorithm string
	expected  string
	encoding  Encoding
}

// New creates a Digest from a labelled digest like "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2" or from an algorithm name
// alone. The encoding of the expected value is detected from its length, defaultEncoding is used when that fails.
func New(digestString string, defaultEncoding Encoding) (*Digest, error) {
	algorithm, expected, _ := strings.Cut(digestString, ":")
	algorithm = strings.ReplaceAll(strings.ToLower(algorithm), "-", "")
	if algorithm == "" {
		algorithm = "sha1"
	}
	encoding := detectEncoding(algorithm, expected, defaultEncoding)

	var h hash.Hash
	switch algorithm {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		return nil, fmt.Errorf("unsupported digest algorithm '%s'", algorithm)
	}
	return &Digest{Hash: h, algorithm: algorithm, expected: expected, encoding: encoding}, nil
}

// Format returns the labelled digest of the data written so far.
func (d *Digest) Format() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.encoding.encode(d.Sum(nil)))
}

// Validate compares the data written so far with the expected digest. Base16 digests are compared case-insensitively.
func (d *Digest) Validate() error {
	computed := d.encoding.encode(d.Sum(nil))
	expected := d.expected
	if d.encoding == Base16 {
		expected = strings.ToUpper(expected)
	}
	if expected != computed {
		return fmt.Errorf("wrong digest: expected %s:%s, computed: %s:%s", d.algorithm, d.expected, d.algorithm, computed)
	}
	return nil
}
