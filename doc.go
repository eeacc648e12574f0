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

/*
Package warcframe reads and writes the framing of WARC records.

# WARC

The WARC format offers a standard way to structure, manage and store billions of resources collected from the web and elsewhere.
A WARC file is a sequence of records. Each record is a version line, a header block and a content block whose size is given by
the Content-Length field:

	WARC/1.1\r\n
	Field-Name: value\r\n
	\r\n
	<Content-Length bytes>
	\r\n\r\n

To learn more about the WARC standard, read the specification at https://iipc.github.io/warc-specifications/specifications/warc-format/warc-1.1/

# Parse WARC records

The [Reader] parses records from a stream without loading more than one record into memory. It is initialized with [NewReader].
Records are pulled with [Reader.Next] or ranged over with [Reader.Records]. The first framing or input error ends the stream.

# Write WARC records

[WriteRecord] writes a [Record] with its content block. [WriteRecordWithoutBody] and [WriteBody] let the caller stream
the content block separately. Ids for new records are created with [NewRecordID].

# Limitations

Header values are not validated, compressed input is not supported and, unless [WithMaxContentLength] is used, the size of
the content block is not limited.
*/
package warcframe
