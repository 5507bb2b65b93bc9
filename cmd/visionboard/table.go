package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Archetypes and emotional-core lists can run long; cells are clipped so a
// multi-board table stays one terminal line per record. Full values are
// always available through `show <id>`.
const maxCellWidth = 42

type tableColumn struct {
	name    string
	numeric bool
}

func textColumn(name string) tableColumn {
	return tableColumn{name: name}
}

func numericColumn(name string) tableColumn {
	return tableColumn{name: name, numeric: true}
}

// boardTable renders vision records with the shared CLI table conventions:
// rounded borders, left-aligned headers, counts and scores pushed right.
type boardTable struct {
	columns []tableColumn
	rows    [][]string
}

func newBoardTable(columns ...tableColumn) *boardTable {
	return &boardTable{columns: columns}
}

func (bt *boardTable) addRow(cells ...string) {
	row := make([]string, len(bt.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = clipCell(cells[i])
		}
	}
	bt.rows = append(bt.rows, row)
}

func (bt *boardTable) render() string {
	if len(bt.columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(bt.columns))
	configs := make([]table.ColumnConfig, 0, len(bt.columns))
	for i, column := range bt.columns {
		header[i] = column.name
		align := text.AlignLeft
		if column.numeric {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range bt.rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tw.AppendRow(cells)
	}

	return tw.Render()
}

func clipCell(value string) string {
	runes := []rune(value)
	if len(runes) <= maxCellWidth {
		return value
	}
	return strings.TrimRight(string(runes[:maxCellWidth-1]), " ") + "…"
}
