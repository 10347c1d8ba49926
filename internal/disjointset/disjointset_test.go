package disjointset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Forest_singletons(t *testing.T) {
	assert := assert.New(t)

	f := New([]string{"a", "b", "c"})

	assert.Equal("a", f.Find("a"))
	assert.Equal("b", f.Find("b"))
	assert.Equal("c", f.Find("c"))
}

func Test_Forest_Union_mergesClasses(t *testing.T) {
	assert := assert.New(t)

	f := New([]string{"a", "b", "c", "d"})

	f.Union("a", "b")
	f.Union("c", "d")

	assert.Equal(f.Find("a"), f.Find("b"))
	assert.Equal(f.Find("c"), f.Find("d"))
	assert.NotEqual(f.Find("a"), f.Find("c"))
}

func Test_Forest_Union_tieBreaksTowardFirstArg(t *testing.T) {
	assert := assert.New(t)

	// two singletons, both rank 1: a tie. a's root must absorb b's root.
	f := New([]string{"a", "b"})
	f.Union("a", "b")

	assert.Equal("a", f.Find("a"))
	assert.Equal("a", f.Find("b"))
}

func Test_Forest_Union_transitive(t *testing.T) {
	assert := assert.New(t)

	f := New([]string{"a", "b", "c"})
	f.Union("a", "b")
	f.Union("b", "c")

	root := f.Find("a")
	assert.Equal(root, f.Find("b"))
	assert.Equal(root, f.Find("c"))
}

func Test_Forest_Classes(t *testing.T) {
	assert := assert.New(t)

	f := New([]string{"a", "b", "c", "d", "e"})
	f.Union("a", "b")
	f.Union("c", "d")

	classes := f.Classes()
	assert.Len(classes, 3)

	var total int
	for _, c := range classes {
		total += len(c)
	}
	assert.Equal(5, total)
}

func Test_Forest_Find_panicsOnNonMember(t *testing.T) {
	f := New([]string{"a"})

	assert.Panics(t, func() {
		f.Find("not-there")
	})
}
