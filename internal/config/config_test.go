package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := viper.New()
	v.Set("base_url", "https://flags.example.com/data")
	v.Set("output_dir", "downloaded")
	v.Set("concurrency", 30)
	v.Set("request_timeout", "3s")
	v.Set("verbose", false)
	v.Set("http_addr", ":8000")
	v.Set("tcp_addr", ":2323")
	v.Set("development", true)
	return v
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(validViper())
	require.NoError(t, err)
	require.Equal(t, "https://flags.example.com/data", cfg.BaseURL)
	require.Equal(t, 30, cfg.Concurrency)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.True(t, cfg.Development)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		key   string
		value any
	}{
		{"zero concurrency", "concurrency", 0},
		{"concurrency over cap", "concurrency", 1001},
		{"base url not a url", "base_url", "not a url"},
		{"empty output dir", "output_dir", ""},
		{"zero timeout", "request_timeout", "0s"},
		{"empty http addr", "http_addr", ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := validViper()
			v.Set(tc.key, tc.value)
			_, err := Load(v)
			require.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestInitSuppliesDefaults(t *testing.T) {
	Init("")

	cfg, err := Load(viper.GetViper())
	require.NoError(t, err)
	require.Equal(t, "https://www.fluentpython.com/data/flags", cfg.BaseURL)
	require.Equal(t, "downloaded", cfg.OutputDir)
	require.Equal(t, 5, cfg.Concurrency)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, ":8000", cfg.HTTPAddr)
	require.Equal(t, ":2323", cfg.TCPAddr)
	require.False(t, cfg.Verbose)
}
