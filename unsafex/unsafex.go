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

// Package unsafex holds the pointer conversions shared by the memory
// packages, so the unsafe surface stays in one place.
package unsafex

import "unsafe"

// Pointer returns the address of the first byte of b as an unsafe.Pointer.
// The result is unspecified when cap(b) == 0.
func Pointer(b []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b))
}

// Addr returns the address of the first byte of b. The address is only
// stable while the caller keeps b (or its backing array) alive.
func Addr(b []byte) uintptr {
	return uintptr(Pointer(b))
}
