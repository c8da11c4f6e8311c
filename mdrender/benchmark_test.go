package mdrender

import "testing"

func BenchmarkRenderMarkdown(b *testing.B) {
	input := `# Heading

This is **bold** text with [link](https://example.com) and <Counter initial="3"/>.

<box>

- [ ] Task one
- [x] Task two

</box>

| Name | Value |
| --- | --- |
| A | 1 |
| B | 2 |

` + "```go\nfunc main() {}\n```\n"

	ctx := newTestContext()
	ctx.props.Components.Register("box", boxComponent)
	ctx.props.Components.Register("Counter", counterComponent)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render[*testNode, Range, string](ctx, input)
	}
}
