package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vearutop/spatial"
	"github.com/vearutop/spatial/internal/extract"
	"github.com/vearutop/spatial/internal/logging"
)

func newInspectCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the images, groups and extraction plan of a container",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &extract.UsageError{Msg: "inspect takes exactly one FILE"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags.config)
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(s.logger, "inspect")
			c, err := spatial.OpenFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("container opened",
				slog.String(logging.FieldPath, args[0]),
				slog.String("media_type", c.MediaType()),
				slog.Int("images", c.ImageCount()),
			)
			out, err := renderInspect(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func renderInspect(c *spatial.Container) (string, error) {
	var b strings.Builder

	props := c.Properties()
	version, _ := props.String(spatial.KeyMPFVersion)
	b.WriteString(renderTable(
		[]string{"Property", "Value"},
		[][]string{
			{"Media type", c.MediaType()},
			{"Images", strconv.Itoa(c.ImageCount())},
			{"Primary", strconv.Itoa(c.PrimaryIndex())},
			{"MPF version", orDash(version)},
		},
		nil,
	))
	b.WriteByte('\n')

	rows := make([][]string, 0, c.ImageCount())
	for i := 0; i < c.ImageCount(); i++ {
		p, err := c.PropertiesAt(i)
		if err != nil {
			rows = append(rows, []string{strconv.Itoa(i), "-", "-", "-", "-", err.Error()})
			continue
		}
		typ := "-"
		if v, ok := p.Int(spatial.KeyMPType); ok {
			typ = spatial.MPType(v).String()
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			typ,
			intOrDash(p, spatial.KeyMPIndividualNum),
			intOrDash(p, spatial.KeyPixelWidth) + "x" + intOrDash(p, spatial.KeyPixelHeight),
			intOrDash(p, spatial.KeyOrientation),
			"",
		})
	}
	b.WriteString(renderTable(
		[]string{"Index", "MP type", "Viewpoint", "Size", "Orientation", "Error"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	b.WriteByte('\n')

	groups, _ := props.Maps(spatial.KeyGroups)
	groupRows := make([][]string, 0, len(groups))
	for i, g := range groups {
		typ, _ := g.String(spatial.KeyGroupType)
		groupRows = append(groupRows, []string{strconv.Itoa(i), orDash(typ), groupMembers(g)})
	}
	if len(groupRows) == 0 {
		groupRows = append(groupRows, []string{"-", "none", ""})
	}
	b.WriteString(renderTable([]string{"Group", "Type", "Members"}, groupRows, nil))
	b.WriteByte('\n')

	plan, err := spatial.Plan(c)
	if err != nil {
		return "", err
	}
	planRows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		planRows = append(planRows, []string{string(e.Role), strconv.Itoa(e.Index)})
	}
	b.WriteString(renderTable([]string{"Role", "Index"}, planRows, []columnAlignment{alignLeft, alignRight}))
	return b.String(), nil
}

func groupMembers(g spatial.PropertyMap) string {
	left, lok := g.Int(spatial.KeyGroupIndexLeft)
	right, rok := g.Int(spatial.KeyGroupIndexRight)
	if lok || rok {
		return fmt.Sprintf("left=%s right=%s", intString(left, lok), intString(right, rok))
	}
	v, ok := g.Get(spatial.KeyGroupImageIndices)
	if !ok {
		return ""
	}
	indices, ok := v.([]int)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

func intOrDash(p spatial.PropertyMap, key string) string {
	v, ok := p.Int(key)
	return intString(v, ok)
}

func intString(v int, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.Itoa(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
