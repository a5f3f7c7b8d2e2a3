package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/shinkrobot/internal/domain"
)

func TestParseKind(t *testing.T) {
	tests := map[string]domain.Kind{
		"anime": domain.KindAnime,
		"A":     domain.KindAnime,
		"manga": domain.KindManga,
		"char":  domain.KindCharacter,
		"user":  domain.KindUser,
	}
	for in, want := range tests {
		got, err := parseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := parseKind("staff")
	assert.Error(t, err)
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"ID", "Name"}, [][]string{{"1", "Cowboy Bebop"}, {"5"}}, []columnAlignment{alignRight, alignLeft})

	assert.Contains(t, out, "Cowboy Bebop")
	assert.Contains(t, out, "ID")
	assert.Len(t, strings.Split(out, "\n"), 6)

	assert.Empty(t, renderTable(nil, nil, nil))
}
