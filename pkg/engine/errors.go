// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"gitlab.com/tozd/go/errors"
)

// 🚨 Sentinel errors for the failure kinds callers branch on. They are
// always wrapped with path context before leaving the package; match them
// with errors.Is.
var (
	// ErrSourceNotFound: the source path does not exist.
	ErrSourceNotFound = errors.New("source path does not exist")

	// ErrSourceIsDirectory: the source is a directory but recursion was not
	// requested.
	ErrSourceIsDirectory = errors.New("source path is a directory, but recursive flag is not set")

	// ErrDestinationInsideSource: copying would place the destination inside
	// the tree being copied, which never terminates.
	ErrDestinationInsideSource = errors.New("cannot copy a directory into itself")
)
