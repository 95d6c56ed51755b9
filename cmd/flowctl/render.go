package main

import (
	"fmt"
	"io"
	"strings"

	"flowstate/internal/codec"
	"flowstate/internal/domain"
	"flowstate/internal/ui"
)

const formatTable = "table"

// renderState prints state as a table or in a codec format
func renderState(w io.Writer, format string, version uint64, state domain.State) error {
	if format != formatTable {
		c, err := codec.ForFormat(format)
		if err != nil {
			return err
		}
		return c.EncodeState(state, w)
	}

	fmt.Fprintf(w, "%s %d\n\n", ui.Subtle.Sprint("version"), version)

	var rows [][]string
	for _, n := range state.Nodes {
		rows = append(rows, []string{
			n.ID,
			string(n.Type),
			n.Data.Label,
			fmt.Sprintf("%g,%g", n.Position.X, n.Position.Y),
			marker(n.Selected || n.ID == state.SelectedNodeID),
		})
	}
	fmt.Fprintf(w, "%s (%d)\n", ui.Info.Sprint("nodes"), len(state.Nodes))
	ui.Table(w, []string{"ID", "Type", "Label", "Position", "Sel"}, rows)

	rows = rows[:0]
	for _, e := range state.Edges {
		rows = append(rows, []string{
			e.ID,
			e.Source,
			e.Target,
			string(e.Type),
			marker(e.Selected || e.ID == state.SelectedEdgeID),
		})
	}
	fmt.Fprintf(w, "\n%s (%d)\n", ui.Info.Sprint("edges"), len(state.Edges))
	ui.Table(w, []string{"ID", "Source", "Target", "Type", "Sel"}, rows)

	vp := state.Viewport
	fmt.Fprintf(w, "\n%s x=%g y=%g zoom=%g\n", ui.Info.Sprint("viewport"), vp.X, vp.Y, vp.Zoom)
	fmt.Fprintf(w, "%s %s\n", ui.Info.Sprint("flags"), flags(state))
	return nil
}

func marker(on bool) string {
	if on {
		return "*"
	}
	return ""
}

func flags(state domain.State) string {
	var on []string
	if state.Minimalistic {
		on = append(on, "minimalistic")
	}
	if state.LightTheme {
		on = append(on, "light-theme")
	}
	if state.IsSheetOpen {
		on = append(on, "sheet-open")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ", ")
}

// renderDangling prints dangling references; it prints a check mark when
// there are none
func renderDangling(w io.Writer, refs []domain.DanglingRef) {
	if len(refs) == 0 {
		fmt.Fprintf(w, "%s no dangling references\n", ui.StatusIcon(true))
		return
	}

	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, []string{string(r.Kind), r.ID, r.Ref})
	}
	fmt.Fprintf(w, "%s %d dangling references\n", ui.WarnIcon(), len(refs))
	ui.Table(w, []string{"Kind", "Record", "Missing"}, rows)
}
