package tokenizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 1, CountTokens(""))
	assert.Equal(t, 4, CountTokens("make it great"))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords("  \n"))
	assert.Equal(t, 5, CountWords("[excited] We are winning so much"))
	assert.Equal(t, 3, CountWords("Thank you! [shouts] America! [applause]"))
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), EstimateDuration(0))
	assert.Equal(t, time.Minute, EstimateDuration(150))
	assert.Equal(t, 3*time.Minute+40*time.Second, EstimateDuration(550))
}
