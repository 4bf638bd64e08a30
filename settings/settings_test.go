package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"grip.toml", "grip.yaml", "grip.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			s := DefaultSettings()
			s.ForcePull.RotationTrigger = TimeSinceStart
			s.ForcePull.RotationStyle = RotateOverRemaining
			s.Socket.AttachCue = "click"

			require.NoError(t, Save(path, s))
			loaded, err := Load(path)
			require.NoError(t, err)
			if diff := cmp.Diff(s, loaded); diff != "" {
				t.Fatalf("settings changed after round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grip.toml")
	data := []byte(`
[force_pull]
max_speed = 4.5
rotation_trigger = "DISTANCE_TO_HAND"
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(4.5), s.ForcePull.MaxSpeed)
	assert.Equal(t, DistanceToHand, s.ForcePull.RotationTrigger)
	assert.Equal(t, DefaultSocket(), s.Socket)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grip.yaml")
	require.NoError(t, os.WriteFile(path, []byte("force_pull:\n  rotate_trigger_percent: 150\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("force_pull:\n  rotation_style: sideways\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestUnsupportedExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "grip.json"))
	assert.Error(t, err)
	assert.Error(t, Save(filepath.Join(t.TempDir(), "grip.ini"), DefaultSettings()))
}

func TestSaveDefaultRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grip.toml")
	require.NoError(t, SaveDefault(path))
	assert.Error(t, SaveDefault(path))
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Sim.FixedStep = 0
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.ForcePull.SlerpDrive.Damper = -1
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Socket.ScaleToFit = true
	s.Socket.FitSize = 0
	assert.Error(t, s.Validate())
}

func TestWithDefaultsOnlyFillsUnsetSections(t *testing.T) {
	assert.Equal(t, DefaultSettings(), Settings{}.WithDefaults())

	custom := Settings{Stabbable: Stabbable{AllowMultipleStabbers: true}}
	got := custom.WithDefaults()
	assert.Equal(t, Stabbable{AllowMultipleStabbers: true}, got.Stabbable, "set sections are kept as they are")
	assert.Equal(t, DefaultSim(), got.Sim)
	assert.Equal(t, DefaultForcePull(), got.ForcePull)
	assert.Equal(t, DefaultSocket(), got.Socket)
}
