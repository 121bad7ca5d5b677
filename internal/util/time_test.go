package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTimeProvider() {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()
}

func TestInitializeTimeProvider(t *testing.T) {
	resetTimeProvider()

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "named timezone", timezone: "Europe/Berlin"},
		{name: "empty defaults to local", timezone: ""},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, GetTimeProvider().Location())
		})
	}
}

func TestInitializeKeepsProviderOnError(t *testing.T) {
	resetTimeProvider()
	require.NoError(t, InitializeTimeProvider("UTC"))

	// A failed re-initialization must not clobber the working provider.
	assert.Error(t, InitializeTimeProvider("Not/A/Zone"))
	assert.Equal(t, time.UTC, GetTimeProvider().Location())
}

func TestGetTimeProviderDefaults(t *testing.T) {
	resetTimeProvider()

	tp := GetTimeProvider()
	require.NotNil(t, tp)
	assert.Equal(t, time.Local, tp.Location())
}

func TestTimeProviderNow(t *testing.T) {
	resetTimeProvider()
	require.NoError(t, InitializeTimeProvider("UTC"))

	now := GetTimeProvider().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, 5*time.Second)
}
