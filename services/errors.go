// Copyright (c) 2024 The Metadata Wizard Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package services

import (
	"fmt"

	"github.com/google/uuid"
)

// indicates that a session is sought but not found
type NotFoundError struct {
	Id uuid.UUID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("The session %s was not found.", e.Id.String())
}

// indicates that Start() has been called when sessions are being processed
type AlreadyRunningError struct{}

func (e AlreadyRunningError) Error() string {
	return "Sessions are already being processed and cannot be started again."
}

// indicates that Stop() has been called when sessions are not being processed
type NotRunningError struct{}

func (e NotRunningError) Error() string {
	return "Sessions are not currently being processed."
}

// indicates that a step submission was attempted on a finished session
type SessionCompletedError struct {
	Id uuid.UUID
}

func (e SessionCompletedError) Error() string {
	return fmt.Sprintf("The session %s has already produced its documents.", e.Id.String())
}
