package slug

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Memória RAM":              "memoria-ram",
		"  Placas de Vídeo  ":      "placas-de-video",
		"SSD NVMe 1TB / Preto":     "ssd-nvme-1tb-preto",
		"Ação & Promoção!!":        "acao-promocao",
		"---":                      "",
		"Kingston Fury Beast DDR5": "kingston-fury-beast-ddr5",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), in)
	}
}

func TestUniqueAppendsSuffix(t *testing.T) {
	taken := map[string]bool{"mouse": true, "mouse-1": true}
	got, err := Unique(context.Background(), "mouse", func(_ context.Context, c string) (bool, error) {
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "mouse-2", got)
}

func TestUniquePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Unique(context.Background(), "mouse", func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
