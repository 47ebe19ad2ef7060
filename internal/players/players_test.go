package players

import (
	"fmt"
	"testing"

	"github.com/janpfeifer/connect4/internal/ai"
	. "github.com/janpfeifer/connect4/internal/state"
	. "github.com/janpfeifer/connect4/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("", PlayerFirst)
	require.NoError(t, err)
	assert.Equal(t, "AI First (alpha-beta(max_depth=2), eval=patterns)", p.String())

	p, err = New("minimax, max_depth=3, eval=outcome, parallelism=4", PlayerSecond)
	require.NoError(t, err)
	assert.Equal(t, "AI Second (minimax(max_depth=3), eval=outcome)", p.String())

	p, err = New("minimax,randomness=0.5", PlayerFirst)
	require.NoError(t, err)
	assert.Contains(t, p.String(), "randomized(minimax(max_depth=2), randomness=0.5)")
	assert.NotNil(t, p.statsFrom)

	for _, config := range []string{
		"max_depth=2",
		"minimax,ab",
		"ab,max_depth=-1",
		"ab,max_depth=two",
		"ab,eval=neural",
		"ab,randomness=1",
		"ab,parallelism=2",
		"minimax,randomness=-1",
		"ab,foo=1",
	} {
		_, err = New(config, PlayerFirst)
		assert.Errorf(t, err, "config %q should fail", config)
	}
	_, err = New("ab,foo=1,bar", PlayerFirst)
	assert.ErrorContains(t, err, `["bar" "foo"]`)
	_, err = New("ab", PlayerInvalid)
	assert.Error(t, err)
}

func TestImmediateWin(t *testing.T) {
	b := BuildBoard(
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". X X . . . .",
		". O O O . . X",
	)
	require.Equal(t, PlayerFirst, b.NextPlayer)
	for _, config := range []string{"minimax", "ab", "minimax,max_depth=1", "ab,max_depth=3", "ab,max_depth=0"} {
		t.Run(config, func(t *testing.T) {
			p, err := New(config, PlayerFirst)
			require.NoError(t, err)
			action, next, score, err := p.Play(b)
			require.NoError(t, err)
			// Both columns 0 and 4 win: the first is taken.
			assert.Equal(t, Action(0), action)
			assert.Equal(t, ai.WinGameScore, score)
			assert.True(t, next.HasWon(PlayerFirst))
			assert.Positive(t, p.Stats.Nodes)
		})
	}
}

func TestForcedBlock(t *testing.T) {
	b := BuildBoard(
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". X . . . . .",
		"X O O O . . .",
	)
	require.Equal(t, PlayerSecond, b.NextPlayer)
	for _, config := range []string{"minimax,max_depth=1", "ab,max_depth=1", "minimax,max_depth=2", "ab,max_depth=2"} {
		t.Run(config, func(t *testing.T) {
			p, err := New(config, PlayerSecond)
			require.NoError(t, err)
			action, _, score, err := p.Play(b)
			require.NoError(t, err)
			assert.Equal(t, Action(4), action)
			assert.Greater(t, score, -ai.WinGameScore)
		})
	}
}

func TestMinimaxAndAlphaBetaAgree(t *testing.T) {
	boards := []*Board{
		NewBoard(),
		Play(NewBoard(), 3, 3, 2, 4),
		Play(NewBoard(), 3, 2, 3, 4, 1, 1, 5),
		Play(NewBoardWithShape(5, 5), 2, 2, 1, 3),
	}
	for ii, b := range boards {
		for depth := range 3 {
			t.Run(fmt.Sprintf("board=%d,depth=%d", ii, depth), func(t *testing.T) {
				config := fmt.Sprintf("max_depth=%d", depth)
				mm, err := New("minimax,"+config, b.NextPlayer)
				require.NoError(t, err)
				ab, err := New("ab,"+config, b.NextPlayer)
				require.NoError(t, err)
				mmAction, _, mmScore, err := mm.Play(b)
				require.NoError(t, err)
				abAction, _, abScore, err := ab.Play(b)
				require.NoError(t, err)
				assert.Equal(t, mmAction, abAction)
				assert.Equal(t, mmScore, abScore)
				assert.LessOrEqual(t, ab.Stats.Nodes, mm.Stats.Nodes)
			})
		}
	}
}

func TestNoAction(t *testing.T) {
	b := BuildBoard(
		". . . .",
		"O X . .",
		"O X . .",
		"O X . .",
	).Act(PlayerFirst, 0)
	require.True(t, b.IsFinished())
	p, err := New("ab", PlayerSecond)
	require.NoError(t, err)
	_, next, _, err := p.Play(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAction))
	assert.Nil(t, next)
}

func TestFullMatch(t *testing.T) {
	first, err := New("ab,max_depth=1", PlayerFirst)
	require.NoError(t, err)
	second, err := New("minimax,max_depth=1,randomness=0.1,max_move_randomness=4", PlayerSecond)
	require.NoError(t, err)
	matchPlayers := map[PlayerNum]Player{PlayerFirst: first, PlayerSecond: second}

	b := NewBoard()
	for !b.IsFinished() {
		player := matchPlayers[b.NextPlayer]
		_, next, _, err := player.Play(b)
		require.NoError(t, err)
		require.Equal(t, b.MoveNumber+1, next.MoveNumber)
		b = next
	}
	assert.LessOrEqual(t, b.MoveNumber, DefaultRows*DefaultCols)
	assert.NotEqual(t, "game not finished yet", b.FinishReason())
}
