package colour

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAlgorithm(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		want bool
	}{
		{AlgorithmKMeans, true},
		{AlgorithmMeanShift, true},
		{"median-cut", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAlgorithm(tt.alg))
		})
	}
}

func TestNewExtractor(t *testing.T) {
	t.Run("kmeans", func(t *testing.T) {
		e, err := NewExtractor(AlgorithmKMeans, ExtractorOptions{})
		require.NoError(t, err)
		assert.IsType(t, &KMeansExtractor{}, e)
	})

	t.Run("meanshift", func(t *testing.T) {
		e, err := NewExtractor(AlgorithmMeanShift, ExtractorOptions{Radius: 30})
		require.NoError(t, err)
		assert.IsType(t, &MeanShiftExtractor{}, e)
	})

	t.Run("meanshift without radius", func(t *testing.T) {
		_, err := NewExtractor(AlgorithmMeanShift, ExtractorOptions{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewExtractor("octree", ExtractorOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown algorithm")
	})
}

func TestExtractorsShareInterface(t *testing.T) {
	src := solidSource(3, 3, nrgba(30, 60, 90))

	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			e, err := NewExtractor(alg, ExtractorOptions{
				Rand:   rand.New(rand.NewSource(1)),
				Radius: 200,
			})
			require.NoError(t, err)

			p, err := e.Extract(src, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"#1e3c5a"}, p.ToHex())
		})
	}
}

func TestExtractorsRejectNegativeCount(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			e, err := NewExtractor(alg, ExtractorOptions{Radius: 200})
			require.NoError(t, err)

			_, err = e.Extract(solidSource(2, 2, nrgba(1, 2, 3)), -1)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}
