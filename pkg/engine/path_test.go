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

package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fastcopy/pkg/engine"
)

func TestNormalizePath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err, "working directory must be readable")

	tests := []struct {
		name        string
		input       string
		want        string
		description string
	}{
		{
			name:        "absolute_unchanged",
			input:       "/a/b/c",
			want:        "/a/b/c",
			description: "clean absolute paths pass through",
		},
		{
			name:        "single_dot_collapsed",
			input:       "/a/./b",
			want:        "/a/b",
			description: "current-dir components disappear",
		},
		{
			name:        "dotdot_pops_previous",
			input:       "/a/b/../c",
			want:        "/a/c",
			description: "a parent component removes what came before it",
		},
		{
			name:        "dotdot_at_root_is_noop",
			input:       "/..",
			want:        "/",
			description: "the root has no parent to pop",
		},
		{
			name:        "many_dotdots_at_root",
			input:       "/../../x",
			want:        "/x",
			description: "excess parents at the root are swallowed",
		},
		{
			name:        "trailing_separator_dropped",
			input:       "/a/b/",
			want:        "/a/b",
			description: "trailing separators do not change the result",
		},
		{
			name:        "relative_joined_to_cwd",
			input:       "x/y",
			want:        filepath.Join(cwd, "x", "y"),
			description: "relative paths resolve against the working directory",
		},
		{
			name:        "relative_with_dotdot",
			input:       "x/../y",
			want:        filepath.Join(cwd, "y"),
			description: "lexical collapse applies after joining",
		},
		{
			name:        "empty_is_cwd",
			input:       "",
			want:        cwd,
			description: "the empty path means here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.NormalizePath(tt.input)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

func TestNormalizePathNeverTouchesFilesystem(t *testing.T) {
	// None of these paths exist; normalization must not care.
	got := engine.NormalizePath("/definitely/not/../here/./ever")
	assert.Equal(t, "/definitely/here/ever", got, "missing paths normalize the same as real ones")
}

func TestContainsPath(t *testing.T) {
	tests := []struct {
		name        string
		parent      string
		child       string
		want        bool
		description string
	}{
		{
			name:        "direct_child",
			parent:      "/a",
			child:       "/a/b",
			want:        true,
			description: "an immediate child is inside",
		},
		{
			name:        "deep_descendant",
			parent:      "/a",
			child:       "/a/b/c/d",
			want:        true,
			description: "depth does not matter",
		},
		{
			name:        "equal_paths",
			parent:      "/a",
			child:       "/a",
			want:        false,
			description: "a path does not contain itself",
		},
		{
			name:        "inverted",
			parent:      "/a/b",
			child:       "/a",
			want:        false,
			description: "a child does not contain its parent",
		},
		{
			name:        "shared_name_prefix",
			parent:      "/a/data",
			child:       "/a/database",
			want:        false,
			description: "name prefixes are not component boundaries",
		},
		{
			name:        "root_contains_everything",
			parent:      "/",
			child:       "/x",
			want:        true,
			description: "the root is everyone's ancestor",
		},
		{
			name:        "siblings",
			parent:      "/a/x",
			child:       "/a/y",
			want:        false,
			description: "siblings contain nothing of each other",
		},
		{
			name:        "normalization_applies_first",
			parent:      "/a/b/..",
			child:       "/a/x",
			want:        true,
			description: "containment is judged on normalized paths",
		},
		{
			name:        "relative_paths",
			parent:      "rel",
			child:       "rel/inner",
			want:        true,
			description: "relative paths resolve against the working directory first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ContainsPath(tt.parent, tt.child)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}
