package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  bob  \n"))

	got, err := GetSimpleText(reader, "Chat partner", &out)
	require.NoError(t, err)
	assert.Equal(t, "bob", got)
	assert.Contains(t, out.String(), "Chat partner")
}

func TestGetSimpleTextEOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "p", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleTextEOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "p", &out)
	require.Error(t, err)
}
