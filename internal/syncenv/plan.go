// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package syncenv

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// Action is one planned step for a single pack.
type Action struct {
	Name    string
	Version string
	Reason  string
}

// Plan partitions the manifest diff into work to do.
type Plan struct {
	Install []Action
	Keep    []Action
	Remove  []Action
}

// computePlan diffs the pinned manifest against the installed catalog. Packs
// whose on-disk tree drifted from the recorded digest get reinstalled; with
// prune set, installed packs absent from the manifest get removed.
func computePlan(ctx context.Context, ws *workspace.Workspace, cat *catalog.Catalog, pins []pack.Pin, prune bool) (Plan, error) {
	installed, err := cat.List(ctx)
	if err != nil {
		return Plan{}, err
	}
	byName := make(map[string]catalog.Entry, len(installed))
	for _, entry := range installed {
		byName[entry.Name] = entry
	}

	sorted := append([]pack.Pin(nil), pins...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var plan Plan
	pinned := make(map[string]struct{}, len(sorted))
	for _, pin := range sorted {
		pinned[pin.Name] = struct{}{}
		entry, ok := byName[pin.Name]
		switch {
		case !ok:
			plan.Install = append(plan.Install, Action{Name: pin.Name, Version: pin.Version, Reason: "new"})
		case entry.Version != pin.Version:
			plan.Install = append(plan.Install, Action{
				Name:    pin.Name,
				Version: pin.Version,
				Reason:  entry.Version + " -> " + pin.Version,
			})
		case pack.VerifyTree(ws.PackDir(pin.Name), entry.Integrity) != nil:
			plan.Install = append(plan.Install, Action{Name: pin.Name, Version: pin.Version, Reason: "integrity drift"})
		default:
			plan.Keep = append(plan.Keep, Action{Name: pin.Name, Version: pin.Version, Reason: "unchanged"})
		}
	}

	for _, entry := range installed {
		if _, ok := pinned[entry.Name]; ok {
			continue
		}
		if prune {
			plan.Remove = append(plan.Remove, Action{Name: entry.Name, Version: entry.Version, Reason: "not in manifest"})
			continue
		}
		plan.Keep = append(plan.Keep, Action{Name: entry.Name, Version: entry.Version, Reason: "unmanaged"})
	}
	sort.Slice(plan.Remove, func(i, j int) bool { return plan.Remove[i].Name < plan.Remove[j].Name })
	sort.Slice(plan.Keep, func(i, j int) bool { return plan.Keep[i].Name < plan.Keep[j].Name })

	return plan, nil
}

func printPlan(w io.Writer, plan Plan) error {
	buf := bufio.NewWriter(w)
	for _, action := range plan.Install {
		fmt.Fprintf(buf, "install %s==%s (%s)\n", action.Name, action.Version, action.Reason)
	}
	for _, action := range plan.Keep {
		if action.Reason != "unchanged" {
			fmt.Fprintf(buf, "keep %s==%s (%s)\n", action.Name, action.Version, action.Reason)
			continue
		}
		fmt.Fprintf(buf, "keep %s==%s\n", action.Name, action.Version)
	}
	for _, action := range plan.Remove {
		fmt.Fprintf(buf, "remove %s==%s (%s)\n", action.Name, action.Version, action.Reason)
	}
	if len(plan.Install) == 0 && len(plan.Remove) == 0 {
		fmt.Fprintln(buf, "workspace up to date")
	}

	return buf.Flush()
}
