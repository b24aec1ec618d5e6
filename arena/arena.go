/*
 * Copyright 2025 embedgo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package arena provisions the backing memory a heap manages.
package arena

import (
	"fmt"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// New returns a fresh arena of size bytes. The memory is requested without
// zeroing, matching the bare-RAM contract that heap payloads are never
// assumed zeroed.
func New(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: size must be positive, got %d", size)
	}
	return dirtmake.Bytes(size, size), nil
}

// Slice carves an arena of size bytes out of memory the caller already owns,
// e.g. a region reserved by a linker script on bare metal. The returned
// slice has its cap clipped so the heap cannot observe bytes past it.
func Slice(buf []byte, size int) ([]byte, error) {
	if size <= 0 || size > len(buf) {
		return nil, fmt.Errorf("arena: cannot carve %d bytes out of %d", size, len(buf))
	}
	return buf[:size:size], nil
}
