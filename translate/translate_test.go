package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(SetLanguage("en-US"))
	assert.Equal("divide by zero", From("divide by zero"))
	assert.Equal("label start missing", From("label %v missing", "start"))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	assert.Error(SetLanguage("not a language tag!"))
	assert.NoError(SetLanguage("en"))
}
