package testvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(StatusInvalidSignature, ParseStatus("invalid"))
	for _, text := range []string{"valid", "acceptable", "", "Invalid", "invalid ", "garbage"} {
		assert.Equal(StatusValid, ParseStatus(text), "result %q", text)
	}
	assert.EqualValues(-149, StatusInvalidSignature)
	assert.Equal("invalid", StatusInvalidSignature.String())
	assert.Equal("valid", StatusValid.String())
	assert.Equal("status(-1)", Status(-1).String())
}
