package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vearutop/spatial/internal/extract"
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
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
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

func renderReport(report extract.Report) string {
	rows := make([][]string, 0, len(report.Items))
	for _, item := range report.Items {
		status := "ok"
		switch {
		case item.Failed():
			status = "failed"
		case len(item.Written()) < len(item.Roles):
			status = "partial"
		}
		rows = append(rows, []string{
			item.Name,
			status,
			strconv.Itoa(len(item.Written())) + "/" + strconv.Itoa(len(item.Roles)),
			itemError(item),
		})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"(no items)", "", "", ""})
	}
	return renderTable(
		[]string{"Item", "Status", "Outputs", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func itemError(item extract.ItemResult) string {
	if item.Err != nil {
		return item.Err.Error()
	}
	for _, role := range item.Roles {
		if role.Err != nil {
			return role.Err.Error()
		}
	}
	return ""
}
