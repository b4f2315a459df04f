package pure_utils

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReaderWithoutBom(t *testing.T) {
	t.Run("strips a leading bom", func(t *testing.T) {
		r := NewReaderWithoutBom(strings.NewReader("\xef\xbb\xbfid,name"))
		out, err := io.ReadAll(r)
		assert.NoError(t, err)
		assert.Equal(t, "id,name", string(out))
	})

	t.Run("leaves clean input alone", func(t *testing.T) {
		r := NewReaderWithoutBom(strings.NewReader("id,name"))
		out, err := io.ReadAll(r)
		assert.NoError(t, err)
		assert.Equal(t, "id,name", string(out))
	})

	t.Run("short input", func(t *testing.T) {
		r := NewReaderWithoutBom(strings.NewReader("a"))
		out, err := io.ReadAll(r)
		assert.NoError(t, err)
		assert.Equal(t, "a", string(out))
	})
}
