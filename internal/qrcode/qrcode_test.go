package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const code = "00020101021226360014br.gov.bcb.pix0114user@bank.com5204000053039865405" +
	"49.905802BR5907Styllus6009Sao Paulo62150511SUB123456786304"

func TestRenderPNG(t *testing.T) {
	out, err := Render(code, PNG, 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestRenderWebP(t *testing.T) {
	out, err := Render(code, WebP, 0)
	require.NoError(t, err)

	require.Greater(t, len(out), 12)
	assert.Equal(t, "RIFF", string(out[:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = ParseFormat("WEBP")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", f.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestRenderRejectsEmptyContent(t *testing.T) {
	_, err := Render("", PNG, 256)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, DefaultSize, clamp(0))
	assert.Equal(t, minSize, clamp(10))
	assert.Equal(t, maxSize, clamp(5000))
	assert.Equal(t, 300, clamp(300))
}
