package mdrender

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state[V, H, S]) renderList(list *ast.List) V {
	element := Ul
	if list.IsOrdered() {
		element = Ol(list.Start)
	}
	return s.element(element, list, s.renderBlockSlice(childNodes(list)))
}

func (s *state[V, H, S]) renderListItem(item *ast.ListItem) V {
	var classes []string
	if isTaskItem(item) {
		classes = append(classes, "task-list-item")
	}
	return s.element(Li, item, s.renderBlockSlice(childNodes(item)), classes...)
}

func isTaskItem(item *ast.ListItem) bool {
	first := item.FirstChild()
	if first == nil {
		return false
	}
	_, ok := first.FirstChild().(*extast.TaskCheckBox)
	return ok
}
