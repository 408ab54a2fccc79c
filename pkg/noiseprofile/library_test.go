package noiseprofile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagsFromPath(t *testing.T) {
	require.Equal(t, []string{"rain"}, tagsFromPath("rain/a.wav"))
	require.Equal(t, []string{"night"}, tagsFromPath("ambience/night/b.wav"))
	require.Nil(t, tagsFromPath("misc/c.wav"))
}

func TestLibraryByTag(t *testing.T) {
	lib := &Library{references: []*NoiseReference{
		{Path: "rain/a.wav", Tags: []string{"rain"}},
		{Path: "night/b.wav", Tags: []string{"night"}},
		{Path: "storm/c.wav", Tags: []string{"rain", "thunder"}},
	}}
	require.Len(t, lib.ByTag("rain"), 2)
	require.Len(t, lib.ByTag("night"), 1)
	require.Len(t, lib.ByTag("thunder"), 1)
	require.Empty(t, lib.ByTag("unknown"))
	require.Len(t, lib.All(), 3)
}

func TestNoiseReferenceChannelDeinterleaves(t *testing.T) {
	ref := &NoiseReference{
		Channels:    2,
		Interleaved: []float32{1, 10, 2, 20, 3, 30},
	}
	left := ref.Channel(0)
	right := ref.Channel(1)
	require.Equal(t, 3, left.Length())

	buf := make([]float32, 3)
	n, err := left.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []float32{1, 2, 3}, buf)

	n, err = right.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []float32{10, 20, 30}, buf)
}

func TestNoiseReferenceChannelMono(t *testing.T) {
	ref := &NoiseReference{Channels: 1, Interleaved: []float32{1, 2, 3}}
	track := ref.Channel(0)
	require.Equal(t, 3, track.Length())
}
