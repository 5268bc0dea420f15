package render

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"zkcli/internal/zkclient"
	"zkcli/internal/zpath"
)

// Alignment selects how a column's cells are justified.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table renders rows under headers with the rounded style. Short rows are
// padded with empty cells.
func Table(headers []string, rows [][]string, aligns []Alignment) string {
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
		if i < len(aligns) && aligns[i] == AlignRight {
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

// ListingEntry is one child in a long listing.
type ListingEntry struct {
	Name string
	Stat zkclient.Stat
}

// Listing renders the ls -l table.
func Listing(entries []ListingEntry, color bool) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Stat.Persistence().String(),
			itoa32(e.Stat.Version),
			itoa32(e.Stat.DataLength),
			itoa32(e.Stat.NumChildren),
			formatTime(e.Stat.Mtime),
			NodeName(e.Name, e.Stat, color),
		})
	}
	return Table(
		[]string{"Mode", "Version", "Bytes", "Children", "Modified", "Name"},
		rows,
		[]Alignment{AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft, AlignLeft},
	)
}

// StatTable renders every Stat field of the node at p as a two column table.
func StatTable(p zpath.Path, stat zkclient.Stat) string {
	owner := "-"
	if stat.Ephemeral() {
		owner = "0x" + strconv.FormatInt(stat.EphemeralOwner, 16)
	}
	rows := [][]string{
		{"Path", p.String()},
		{"Mode", stat.Persistence().String()},
		{"Version", itoa32(stat.Version)},
		{"Child version", itoa32(stat.CVersion)},
		{"ACL version", itoa32(stat.AVersion)},
		{"Data length", itoa32(stat.DataLength)},
		{"Children", itoa32(stat.NumChildren)},
		{"Ephemeral owner", owner},
		{"Created zxid", "0x" + strconv.FormatInt(stat.Czxid, 16)},
		{"Modified zxid", "0x" + strconv.FormatInt(stat.Mzxid, 16)},
		{"Created", formatTime(stat.Ctime)},
		{"Modified", formatTime(stat.Mtime)},
	}
	return Table([]string{"Field", "Value"}, rows, nil)
}

func itoa32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
