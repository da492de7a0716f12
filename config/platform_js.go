//go:build js || wasm

package config

import "syscall/js"

// applyPlatform lets localStorage["loglevel"] override the log level, so it
// can be raised from the browser devtools without a rebuild.
func applyPlatform(cfg *Config) {
	ls := js.Global().Get("localStorage")
	if ls.IsUndefined() || ls.IsNull() {
		return
	}
	if v := ls.Call("getItem", "loglevel"); v.Type() == js.TypeString {
		cfg.LogLevel = v.String()
	}
}
