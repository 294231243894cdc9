package filesort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testLoserValue struct {
	k int
}

func (t testLoserValue) Compare(o interface{}) bool {
	return t.k > o.(testLoserValue).k
}

func winner(lt *loserTree) int {
	return lt.root().value.(testLoserValue).k
}

func TestLoserTree(t *testing.T) {
	loser1 := &loser{value: testLoserValue{k: 1}}
	loser2 := &loser{value: testLoserValue{k: 3}}
	loser3 := &loser{value: testLoserValue{k: 5}}
	loser4 := &loser{value: testLoserValue{k: 4}}
	loser5 := &loser{value: testLoserValue{k: 7}}
	losers := []*loser{loser1, loser2, loser3, loser4, loser5}

	lt := newLoserTree(losers)
	assert.Equal(t, 1, winner(lt))

	loser1.value = testLoserValue{k: 2}
	loser1.contest()
	assert.Equal(t, 2, winner(lt))

	loser1.value = testLoserValue{k: 8}
	loser1.contest()
	assert.Equal(t, 3, winner(lt))

	loser2.value = testLoserValue{k: 9}
	loser2.contest()
	assert.Equal(t, 4, winner(lt))
}

func TestLoserTreeDrain(t *testing.T) {
	values := []int{9, 2, 6, 4}
	losers := make([]*loser, len(values))
	for i, v := range values {
		losers[i] = &loser{value: testLoserValue{k: v}}
	}
	lt := newLoserTree(losers)

	drained := make([]int, 0, len(values))
	for !lt.root().invalid {
		l := lt.root()
		drained = append(drained, l.value.(testLoserValue).k)
		l.exit()
	}
	assert.Equal(t, []int{2, 4, 6, 9}, drained)
}

func TestLoserTreeEmpty(t *testing.T) {
	lt := newLoserTree(nil)
	assert.True(t, lt.root().invalid)
}

func TestLoserTreeSingle(t *testing.T) {
	l := &loser{value: testLoserValue{k: 5}}
	lt := newLoserTree([]*loser{l})
	assert.Equal(t, 5, winner(lt))
	l.exit()
	assert.True(t, lt.root().invalid)
}
