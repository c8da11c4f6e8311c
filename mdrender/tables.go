package mdrender

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state[V, H, S]) renderTable(table *extast.Table) V {
	var head, body []V
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			head = append(head, s.renderTableRow(row, Theader))
		case *extast.TableRow:
			body = append(body, s.renderTableRow(row, Tcell))
		}
	}

	sections := []V{s.ctx.ElWithAttributes(Thead, s.ctx.ElFragment(head), ElementAttributes[H]{})}
	if len(body) > 0 {
		sections = append(sections, s.ctx.ElWithAttributes(Tbody, s.ctx.ElFragment(body), ElementAttributes[H]{}))
	}
	return s.element(Table, table, sections)
}

func (s *state[V, H, S]) renderTableRow(row ast.Node, cellElement HTMLElement) V {
	cells := make([]V, 0, row.ChildCount())
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*extast.TableCell)
		if !ok {
			continue
		}
		attributes := s.attrs(s.nodeRange(cell))
		if cell.Alignment != extast.AlignNone {
			attributes.Style = "text-align: " + cell.Alignment.String()
		}
		cells = append(cells, s.ctx.ElWithAttributes(cellElement, s.ctx.ElFragment(s.renderInlines(cell)), attributes))
	}
	return s.element(Trow, row, cells)
}
