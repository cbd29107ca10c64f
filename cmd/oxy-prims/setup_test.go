package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-prims/config"
	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialScene(t *testing.T) {
	scene := initialScene()
	require.Len(t, scene, 4)

	sphere := scene[0]
	assert.Equal(t, mesh.MeshTypeSphere, sphere.MeshType)
	assert.Equal(t, [3]float32{0, 0, 0}, sphere.Instance.Position())
	assert.InDelta(t, 0.5, sphere.Instance.Model[0], 1e-6)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, sphere.Instance.Color)

	axes := [][3]float32{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}}
	for i, cube := range scene[1:] {
		assert.Equal(t, mesh.MeshTypeCube, cube.MeshType)
		assert.Equal(t, axes[i], cube.Instance.Position())
		assert.InDelta(t, 0.1, cube.Instance.Model[0], 1e-6)

		// each cube is colored by its axis
		for c := range 3 {
			want := float32(0)
			if c == i {
				want = 1
			}
			assert.Equal(t, want, cube.Instance.Color[c])
		}
	}
}

func TestLoadConfigCameraOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := loadConfig(path, "quaternion")
	require.NoError(t, err)
	assert.Equal(t, "quaternion", cfg.Camera.Variant)

	_, err = loadConfig(path, "fisheye")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, camera.ErrUnknownVariant)
}

func TestLoadConfigFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mesh:\n  sphere_divisions: 1\n"), 0644))

	_, err := loadConfig(path, "")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestCameraOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Distance = 20
	cfg.Camera.DistanceMax = 15

	cam, err := camera.New(camera.VariantQuaternion, cameraOptions(cfg)...)
	require.NoError(t, err)
	assert.InDelta(t, 15, cam.Distance(), 1e-6)
}

func TestRendererOptions(t *testing.T) {
	cfg := config.Default()
	assert.Len(t, rendererOptions(cfg, nil), 7)
}
