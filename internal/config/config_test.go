package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(write(t, "driver: nrz\nlayout:\n  serpentine: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "nrz", c.Driver)
	assert.Equal(t, "GRB", c.ColorOrder)
	assert.Equal(t, 5, c.Cadence)
	assert.Equal(t, 5, c.SampleMs)
	assert.Equal(t, "lis3dh", c.Sensor.Kind)
	assert.Equal(t, 15, c.Layout.Layout().Index(1, 0))
}

func TestLoadSerialOptions(t *testing.T) {
	c, err := Load(write(t, "driver: serial\nserial:\n  port: /dev/ttyACM0\n  parity: even\n"))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", c.Serial.Port)
	assert.Equal(t, "E", c.Serial.Parity)
	assert.Equal(t, 115200, c.Serial.BaudRate)
}

func TestLoadRejects(t *testing.T) {
	for _, body := range []string{
		"driver: laser\n",
		"color_order: RG\n",
		"driver: serial\nserial:\n  data_bits: 12\n",
		"cadence: [\n",
	} {
		_, err := Load(write(t, body))
		assert.Error(t, err, body)
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRoundTrip(t *testing.T) {
	c := Default()
	c.Driver = "spi"
	c.Cadence = 3
	c.Sensor.Fixed = "portrait_up"
	c.Sensor.Forced = "face_down"
	p := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(p, &c))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}
