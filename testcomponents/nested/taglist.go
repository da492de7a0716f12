// Package nested holds components whose templates embed other compiled
// templates.
package nested

import "github.com/vcrobe/nojs-html/runtime"

// TagList renders one removable item per tag. Each item is its own
// compiled template nested in the list's template.
type TagList struct {
	runtime.ComponentBase
	Tags []string
}

func (t *TagList) OnInit() {
	if t.Tags == nil {
		t.Tags = []string{"golang", "wasm", "component", "framework"}
	}
}

func (t *TagList) Render() {
	items := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		items[i] = t.HTML([]string{`<li @click=`, `>`, `</li>`}, t.remover(tag), tag)
	}
	t.RenderHTML(t.HTML([]string{
		`<div><ul>`, `</ul><button ?disabled=`, ` @click=`, `>clear</button></div>`,
	}, items, len(t.Tags) == 0, t.ClearTags))
}

func (t *TagList) remover(tag string) func() {
	return func() { t.RemoveTag(tag) }
}

// AddTag appends a tag and schedules a render.
func (t *TagList) AddTag(newTag string) {
	t.Tags = append(t.Tags, newTag)
	t.StateHasChanged()
}

// RemoveTag removes the first occurrence of tag and schedules a render.
func (t *TagList) RemoveTag(tag string) {
	for i, v := range t.Tags {
		if v == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			break
		}
	}
	t.StateHasChanged()
}

// ClearTags removes every tag and schedules a render.
func (t *TagList) ClearTags() {
	t.Tags = []string{}
	t.StateHasChanged()
}
