package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// keyValue is one row of a two-column summary table.
type keyValue struct {
	Key   string
	Value string
}

func renderKeyValues(rows []keyValue) string {
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{row.Key, row.Value})
	}
	return renderTable([]string{"Field", "Value"}, body, []columnAlignment{alignLeft, alignRight})
}

// treeItem is a node of the hierarchy printed by the tree command.
type treeItem struct {
	Label    string      `json:"label"`
	Folder   bool        `json:"folder"`
	Tracks   int         `json:"tracks,omitempty"`
	Children []*treeItem `json:"children,omitempty"`
}

func renderTree(title string, items []*treeItem) string {
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)
	lw.AppendItem(title)
	lw.Indent()
	appendTreeItems(lw, items)
	return lw.Render()
}

func appendTreeItems(lw list.Writer, items []*treeItem) {
	for _, item := range items {
		if item.Folder {
			lw.AppendItem(item.Label + "/")
		} else {
			lw.AppendItem(fmt.Sprintf("%s (%d)", item.Label, item.Tracks))
		}
		if len(item.Children) > 0 {
			lw.Indent()
			appendTreeItems(lw, item.Children)
			lw.UnIndent()
		}
	}
}
