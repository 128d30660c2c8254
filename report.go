package runlevel

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Cell is one (runlevel, membership) entry in a report row
type Cell struct {
	// Runlevel is the runlevel this cell describes
	Runlevel string
	// Member reports whether the row's service belongs to Runlevel
	Member bool
}

// Row is the membership of one service across the requested runlevels
type Row struct {
	// Service is the service name
	Service string
	// Cells holds one entry per requested runlevel, in request order
	Cells []Cell
}

// InAny reports whether the row has at least one membership
func (r Row) InAny() bool {
	for _, cell := range r.Cells {
		if cell.Member {
			return true
		}
	}
	return false
}

// Report renders the membership matrix of all known services against a
// requested ordered set of runlevels.
type Report struct {
	// Registry is the membership registry queried
	Registry Registry
	// Runlevels is the ordered set of runlevels to report on
	Runlevels []string
	// Verbose includes services with no membership in any requested runlevel
	Verbose bool
}

// Rows builds one Row per service known to the registry, in registry
// order, with one Cell per requested runlevel.
func (r *Report) Rows(ctx context.Context) ([]Row, error) {
	services, err := r.Registry.Services(ctx, "")
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(services))
	for _, service := range services {
		row := Row{Service: service, Cells: make([]Cell, 0, len(r.Runlevels))}
		for _, runlevel := range r.Runlevels {
			row.Cells = append(row.Cells, Cell{
				Runlevel: runlevel,
				Member:   r.Registry.IsMember(ctx, service, runlevel),
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Render writes the report to w, one line per service: the service name
// right-aligned in a fixed-width column, a separator, then each cell as
// the runlevel name when the service is a member or a blank of equal
// width when it is not. Rows with no membership are omitted unless
// Verbose is set.
func (r *Report) Render(ctx context.Context, w io.Writer) error {
	rows, err := r.Rows(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if !row.InAny() && !r.Verbose {
			continue
		}

		if _, err := fmt.Fprintf(w, " %*s |", ServiceNameWidth, row.Service); err != nil {
			return err
		}
		for _, cell := range row.Cells {
			name := cell.Runlevel
			if !cell.Member {
				name = strings.Repeat(" ", len(cell.Runlevel))
			}
			if _, err := fmt.Fprintf(w, " %s", name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
