//go:build js || wasm

package store

import (
	"context"
	"fmt"
	"syscall/js"
)

// LocalStorage persists the state tree in window.localStorage.
type LocalStorage struct {
	key string
}

// NewLocalStorage stores the tree under StorageKey.
func NewLocalStorage() *LocalStorage { return &LocalStorage{key: StorageKey} }

func (l *LocalStorage) storage() (js.Value, error) {
	ls := js.Global().Get("localStorage")
	if ls.IsUndefined() || ls.IsNull() {
		return js.Value{}, fmt.Errorf("localStorage is not available")
	}
	return ls, nil
}

func (l *LocalStorage) Load(ctx context.Context) (map[string]any, bool, error) {
	ls, err := l.storage()
	if err != nil {
		return nil, false, err
	}
	v := ls.Call("getItem", l.key)
	if v.IsNull() || v.IsUndefined() {
		return nil, false, nil
	}
	state, err := decodeState([]byte(v.String()))
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

func (l *LocalStorage) Save(ctx context.Context, state map[string]any) error {
	ls, err := l.storage()
	if err != nil {
		return err
	}
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	ls.Call("setItem", l.key, string(data))
	return nil
}

func (l *LocalStorage) Clear(ctx context.Context) error {
	ls, err := l.storage()
	if err != nil {
		return err
	}
	ls.Call("removeItem", l.key)
	return nil
}
