//go:build js && wasm

// Command counter is a browser demo: a store-backed counter and a tag list
// mounted on #counter and #tags.
package main

import (
	"github.com/vcrobe/nojs-html/config"
	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/dom"
	"github.com/vcrobe/nojs-html/markup"
	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/store"
	"github.com/vcrobe/nojs-html/testcomponents/databinding"
	"github.com/vcrobe/nojs-html/testcomponents/nested"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		console.Warn("using default configuration", "error", err)
	}
	log := cfg.Logger()
	console.SetDefault(log)

	opts := cfg.StoreOptions(log)
	if cfg.Persist {
		opts = append(opts, store.WithStorage(store.NewLocalStorage()))
	}
	st := store.New(map[string]any{"count": 0}, opts...)
	st.ListenWindowMessages()

	engine := markup.NewEngine(markup.WithLogger(log))
	queue := runtime.DefaultQueue()

	counter := &databinding.StoreCounter{}
	counter.Init(counter, runtime.Params{
		Element:        dom.GetElementByID("counter"),
		Store:          st,
		RenderTriggers: []string{"count", store.ResetEvent},
		Scheduler:      queue,
		Engine:         engine,
		Logger:         log,
	})
	counter.StateHasChanged()

	tags := &nested.TagList{}
	tags.Init(tags, runtime.Params{
		Element:   dom.GetElementByID("tags"),
		Store:     st,
		Scheduler: queue,
		Engine:    engine,
		Logger:    log,
	})
	tags.StateHasChanged()

	log.Info("counter demo started", "store", st.Name())

	// Keep the Go program alive for callbacks.
	select {}
}
