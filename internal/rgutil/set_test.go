package rgutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StringSet_AddAll_reportsChange(t *testing.T) {
	assert := assert.New(t)

	s := NewStringSet("a")
	changed := s.AddAll(NewStringSet("a", "b"))
	assert.True(changed)
	assert.True(s.Has("b"))

	changed = s.AddAll(NewStringSet("a", "b"))
	assert.False(changed)
}

func Test_StringSet_Ordered_isSorted(t *testing.T) {
	assert := assert.New(t)

	s := NewStringSet("z", "a", "m")
	assert.Equal([]string{"a", "m", "z"}, s.Ordered())
}

func Test_StringSet_Equal(t *testing.T) {
	assert := assert.New(t)

	assert.True(NewStringSet("a", "b").Equal(NewStringSet("b", "a")))
	assert.False(NewStringSet("a").Equal(NewStringSet("a", "b")))
}

func Test_MakeTextList(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", MakeTextList(nil))
	assert.Equal("a", MakeTextList([]string{"a"}))
	assert.Equal("a and b", MakeTextList([]string{"a", "b"}))
	assert.Equal("a, b, and c", MakeTextList([]string{"a", "b", "c"}))
}

func Test_ArticleFor(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("a", ArticleFor("token", false))
	assert.Equal("an", ArticleFor("INT", false))
	assert.Equal("An", ArticleFor("INT", true))
}
