package serve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{"Empty", "  ", map[string]string{}, false},
		{"Single", "maxmemory=1gb", map[string]string{"maxmemory": "1gb"}, false},
		{"Multiple", "Search=20612, json = 20609", map[string]string{"search": "20612", "json": "20609"}, false},
		{"EmptyValue", "save=", map[string]string{"save": ""}, false},
		{"MissingValue", "search", nil, true},
		{"MissingName", "=1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePairs(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
