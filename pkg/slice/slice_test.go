// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-press/pkg/slice"
)

func TestUnique(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil stays nil", nil, nil},
		{"empty stays empty", []string{}, []string{}},
		{"keeps first occurrence", []string{"b", "a", "b", "c", "a"}, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slice.Unique(tt.input))
		})
	}
}

func TestMapAndFilter(t *testing.T) {
	upper := slice.Map([]string{"go", "sql"}, strings.ToUpper)
	assert.Equal(t, []string{"GO", "SQL"}, upper)
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))

	short := slice.Filter([]string{"go", "rust", "c"}, func(s string) bool { return len(s) <= 2 })
	assert.Equal(t, []string{"go", "c"}, short)
	assert.Nil(t, slice.Filter[string](nil, func(string) bool { return true }))
}
