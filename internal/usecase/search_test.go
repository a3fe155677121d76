package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike(`100%`))
	assert.Equal(t, `a\_b`, EscapeLike(`a_b`))
	assert.Equal(t, `c:\\temp`, EscapeLike(`c:\temp`))
	assert.Equal(t, `plain`, EscapeLike(`plain`))
}

func TestLikePattern(t *testing.T) {
	// blank means "no filter"
	assert.Equal(t, "", LikePattern(""))
	assert.Equal(t, "", LikePattern("   "))

	assert.Equal(t, "%anna%", LikePattern("Anna"))

	// a term containing % must only match the literal text
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
}
