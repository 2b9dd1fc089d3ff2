package cmd

import (
	"math"
	"testing"

	"github.com/brogergvhs/mangatown/internal/chapters"
	"github.com/brogergvhs/mangatown/internal/config"
	"github.com/brogergvhs/mangatown/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionQuery(t *testing.T) {
	s := &session{cfg: config.DefaultConfig()}

	q, err := s.query([]string{"Wakusei", "No", "Samidare"}, "0-5,63-")
	require.NoError(t, err)
	assert.Equal(t, "Wakusei No Samidare", q.Series)
	assert.Equal(t, []chapters.Range{{Start: 0, End: 5}, {Start: 63, End: math.Inf(1)}}, q.Ranges)
	assert.Equal(t, "0-5,63-", rangesString(q))
}

func TestSessionQuery_ConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultSeries = "One Piece"
	cfg.DefaultChapters = "1000"
	s := &session{cfg: cfg}

	q, err := s.query(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "One Piece", q.Series)
	assert.Equal(t, []chapters.Range{{Start: 1000, End: 1000}}, q.Ranges)
}

func TestSessionQuery_Errors(t *testing.T) {
	s := &session{cfg: config.DefaultConfig()}

	_, err := s.query(nil, "")
	assert.ErrorContains(t, err, "missing series name")

	_, err = s.query([]string{"One Piece"}, "9-1")
	assert.Error(t, err)
}

func TestChapterRows(t *testing.T) {
	rows := chapterRows([]providers.Chapter{
		{Number: 64.5, URL: "https://www.mangatown.com/manga/a/c064.5/"},
		{Number: 65, URL: "https://www.mangatown.com/manga/a/c065/"},
	})
	assert.Equal(t, [][]string{
		{"64.5", "https://www.mangatown.com/manga/a/c064.5/"},
		{"65", "https://www.mangatown.com/manga/a/c065/"},
	}, rows)
}
