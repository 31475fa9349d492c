package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/smasonuk/siemesh"
)

// viewer config.toml key mapping, overlaid on the defaults so a partial
// file only overrides what it names.
type fileConfig struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Primitive string  `toml:"primitive"`
	Size      float64 `toml:"size"`
	Spin      float64 `toml:"spin"`
	Distance  float64 `toml:"distance"`
}

type viewerConfig struct {
	Width     int
	Height    int
	Primitive string
	Size      float64
	Spin      float64
	Distance  float64
}

func defaultConfig() viewerConfig {
	return viewerConfig{
		Width:     960,
		Height:    720,
		Primitive: "cube",
		Size:      2,
		Spin:      0.004,
		Distance:  8,
	}
}

func loadConfig(path string) (viewerConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return viewerConfig{}, fmt.Errorf("load viewer config: %w", err)
	}

	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Height = raw.Height
	}
	if meta.IsDefined("primitive") {
		cfg.Primitive = strings.TrimSpace(raw.Primitive)
	}
	if meta.IsDefined("size") {
		cfg.Size = raw.Size
	}
	if meta.IsDefined("spin") {
		cfg.Spin = raw.Spin
	}
	if meta.IsDefined("distance") {
		cfg.Distance = raw.Distance
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return viewerConfig{}, fmt.Errorf("load viewer config: window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Size <= 0 {
		return viewerConfig{}, fmt.Errorf("load viewer config: size must be positive, got %f", cfg.Size)
	}
	if _, err := buildPrimitive(cfg.Primitive, cfg.Size); err != nil {
		return viewerConfig{}, fmt.Errorf("load viewer config: %w", err)
	}
	return cfg, nil
}

func buildPrimitive(name string, size float64) (*siemesh.Mesh, error) {
	switch name {
	case "plane":
		return siemesh.NewPlane(size, size), nil
	case "cube":
		return siemesh.NewCube(size), nil
	case "cylinder":
		return siemesh.NewCylinder(size/2, size, 16), nil
	case "sphere":
		return siemesh.NewSphere(size/2, 16, 8), nil
	case "torus":
		return siemesh.NewTorus(size/2, size/6, 16, 8), nil
	case "tetrahedron":
		return siemesh.NewTetrahedron(size / 2), nil
	case "octahedron":
		return siemesh.NewOctahedron(size / 2), nil
	case "icosahedron":
		return siemesh.NewIcosahedron(size / 2), nil
	case "dodecahedron":
		return siemesh.NewDodecahedron(size / 2), nil
	}
	return nil, fmt.Errorf("unknown primitive %q", name)
}
