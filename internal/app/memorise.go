package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/vitals/internal/group"
	"nathanbeddoewebdev/vitals/internal/history"
	"nathanbeddoewebdev/vitals/internal/util"
)

// ErrNoAlias is returned when remember is not told what to call the group.
var ErrNoAlias = errors.New("app: missing 'as <group>' alias")

// RememberArgs splits "a b as name" into members and alias.
func RememberArgs(args []string) ([]string, string, error) {
	members, alias, ok := util.SplitAs(args)
	if !ok || len(members) == 0 {
		return nil, "", fmt.Errorf("%w: usage is '<metrics...> as <group>'", ErrNoAlias)
	}
	return members, alias, nil
}

// Remember registers a group named alias holding the given metrics or
// groups, and saves the alias file. With unit set, members in another unit
// are left out.
func (a *App) Remember(w io.Writer, members []string, alias, unit string) error {
	alias = util.NormalizeKey(alias)
	if err := util.ValidateGroupName(alias); err != nil {
		return err
	}

	sourced, err := a.Sourcer.SourceAll(alias, members)
	if err != nil {
		a.Journal.Fail(history.ActionRemember, alias, err)
		return err
	}
	g := group.New(alias, strings.TrimSpace(unit), a.Log)
	added := g.AddAll(sourced.Metrics())
	skipped := 0
	for _, ok := range added {
		if !ok {
			skipped++
		}
	}
	if g.Count() == 0 {
		err := fmt.Errorf("app: no member of %q has unit %q", alias, unit)
		a.Journal.Fail(history.ActionRemember, alias, err)
		return err
	}

	a.Groups.Register(alias, g)
	if err := a.saveGroups(); err != nil {
		return err
	}
	a.Log.Infow("registered group", "action", "remember", "group", alias, "metrics", g.Count())
	a.Journal.Save(&history.Record{
		Action: history.ActionRemember,
		Metric: alias,
		Detail: strings.Join(g.Names(), ", "),
	})

	fmt.Fprintf(w, "Registered group %q containing %d metrics.\n", alias, g.Count())
	if skipped > 0 {
		fmt.Fprintf(w, "Left out %d metric(s) not measured in %s.\n", skipped, unit)
	}
	return nil
}

// Forget removes the named groups. Names that are not groups are reported
// and skipped.
func (a *App) Forget(w io.Writer, names []string) error {
	removed := 0
	for _, name := range names {
		name = util.NormalizeKey(name)
		if !a.Groups.Remove(name) {
			fmt.Fprintf(w, "No group named %q.\n", name)
			continue
		}
		removed++
		a.Journal.Save(&history.Record{Action: history.ActionForget, Metric: name})
		fmt.Fprintf(w, "Forgot group %q.\n", name)
	}
	if removed == 0 {
		return nil
	}
	return a.saveGroups()
}

// ListGroups prints every registered group and its members.
func (a *App) ListGroups(w io.Writer) error {
	names := a.Groups.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No groups remembered.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tUNIT\tMETRICS\tMEMBERS")
	fmt.Fprintln(tw, "-----\t----\t-------\t-------")
	for _, name := range names {
		g, err := a.Groups.Get(name)
		if err != nil {
			continue
		}
		unit := g.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", name, unit, g.Count(), strings.Join(g.Names(), ", "))
	}
	return tw.Flush()
}

func (a *App) saveGroups() error {
	if a.Groups.SourceFile() == "" {
		return nil
	}
	if err := a.Groups.Save(); err != nil {
		a.Log.Errorw("failed to save groups", "path", a.Groups.SourceFile(), "error", err)
		return err
	}
	return nil
}
