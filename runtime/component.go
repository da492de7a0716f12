package runtime

// Component is implemented by every component. This interface has no build
// tags, so components can be rendered in WASM and in native tests alike.
type Component interface {
	// Render writes the component's markup into its element, usually with
	// Engine().HTML followed by RenderHTML.
	Render()
}

// Initializer is implemented by components that need setup once Init has
// wired element, props, store and engine. OnInit runs before any render.
type Initializer interface {
	OnInit()
}

// Cleaner is implemented by components that release resources when
// Destroy is called.
type Cleaner interface {
	OnDestroy()
}
