package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorMissingTemplate(t *testing.T) {
	_, err := NewGenerator("/nonexistent/template.png", Layout{})
	assert.Error(t, err)
}

func TestRenderWithoutTemplate(t *testing.T) {
	gen, err := NewGenerator("", Layout{NameX: 100, NameY: 110, DateX: 130, DateY: 140})
	require.NoError(t, err)

	issued := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	data, err := gen.Render("Maria Souza", issued)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}
