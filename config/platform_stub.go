//go:build !js && !wasm

package config

func applyPlatform(*Config) {}
