package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ToAST converts the table to a Shape AST:
//   - *ast.ArrayDataNode for the table (array of records)
//   - *ast.ArrayDataNode for each record (array of fields)
//   - *ast.LiteralNode for each field, holding string, int64, float64, bool or nil
//
// This is useful for integration with other Shape parsers.
func (t *Table) ToAST() *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, 0, len(t.rows))
	for _, r := range t.rows {
		fields := make([]ast.SchemaNode, 0, len(r.fields))
		for _, f := range r.fields {
			fields = append(fields, ast.NewLiteralNode(f.value(), ast.ZeroPosition()))
		}
		records = append(records, ast.NewArrayDataNode(fields, ast.ZeroPosition()))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// FromAST builds a table from an array of records as produced by the parser
// or ToAST. Literal values map to field kinds by Go type.
func FromAST(node ast.SchemaNode, d *Dialect) (*Table, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	t := NewTable(d)
	for i, elem := range arrayNode.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}

		row := t.CreateRow()
		row.fields = grow(row.fields, recordNode.Len(), initialRowCapacity)
		for j, fieldNode := range recordNode.Elements() {
			literalNode, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("record %d field %d: expected *ast.LiteralNode, got %T", i, j, fieldNode)
			}
			row.fields = append(row.fields, fieldFromValue(literalNode.Value()))
		}
	}
	return t, nil
}
