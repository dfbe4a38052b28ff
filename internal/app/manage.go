package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/vitals/internal/history"
	"nathanbeddoewebdev/vitals/internal/metric"
	"nathanbeddoewebdev/vitals/internal/metricstore"
	"nathanbeddoewebdev/vitals/internal/similarity"
	"nathanbeddoewebdev/vitals/internal/tui/styles"
	"nathanbeddoewebdev/vitals/internal/util"
)

// Rename moves a metric and points any group holding it at the new name.
func (a *App) Rename(w io.Writer, oldName, newName string) error {
	oldName = util.NormalizeKey(oldName)
	newName = util.NormalizeKey(newName)

	fmt.Fprintf(w, "Renaming %q to %q...\n", oldName, newName)
	if err := a.Store.Rename(oldName, newName); err != nil {
		a.Journal.Fail(history.ActionRename, oldName, err)
		return err
	}
	a.Journal.Save(&history.Record{
		Action: history.ActionRename,
		Metric: newName,
		Detail: fmt.Sprintf("renamed %s to %s", oldName, newName),
	})

	renamed, err := a.Store.Read(newName)
	if err != nil {
		a.Log.Warnw("renamed metric could not be re-read for groups", "metric", newName, "error", err)
		return nil
	}
	for _, name := range a.Groups.Names() {
		g, _ := a.Groups.Get(name)
		if _, ok := g.Get(oldName); ok {
			g.Remove(oldName)
			g.Add(renamed)
		}
	}
	return nil
}

// Show prints a summary of the named metrics, or of every metric when names
// is empty.
func (a *App) Show(w io.Writer, names []string) error {
	if len(names) == 0 {
		all, err := a.Store.Names()
		if err != nil {
			return err
		}
		names = all
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No metrics recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tGUIDE\tUNIT\tENTRIES\tVERSION")
	fmt.Fprintln(tw, "----\t----\t-----\t----\t-------\t-------")
	for _, name := range names {
		s, err := a.Store.Describe(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t%s\t-\t-\t-\n", util.NormalizeKey(name), styles.ErrorText.Render(err.Error()))
			continue
		}
		unit := s.Unit
		if unit == "" {
			unit = "-"
		}
		version := fmt.Sprint(s.FileVersion)
		if s.Outdated {
			version += styles.WarningText.Render(" (outdated)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", s.Name, s.Type, s.Descriptor, unit, s.Entries, version)
	}
	return tw.Flush()
}

// Search lists the stored metrics most similar to query with their scores.
func (a *App) Search(w io.Writer, query string, limit int) error {
	names, err := a.Store.Names()
	if err != nil {
		return err
	}
	matches := similarity.Rank(util.NormalizeKey(query), names)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No metrics recorded yet.")
		return nil
	}
	for i, m := range matches {
		fmt.Fprintf(w, " (%d) %s %s\n", i+1, m.Candidate, styles.MutedText.Render(fmt.Sprintf("%.2f", m.Score)))
	}
	return nil
}

// Instantiate creates an empty metric. A nil guide asks the prompter.
func (a *App) Instantiate(w io.Writer, name string, guide metric.Guide, unit string) error {
	name = util.NormalizeKey(name)
	if err := util.ValidateMetricName(name); err != nil {
		return err
	}
	if exists, err := a.Store.Exists(name); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: %q", metricstore.ErrExists, name)
	}

	if guide == nil {
		g, err := a.Prompter.PromptGuide(name)
		if err != nil {
			return err
		}
		guide = g
	}

	if err := a.Store.Create(metric.New(name, guide, strings.TrimSpace(unit))); err != nil {
		a.Journal.Fail(history.ActionCreate, name, err)
		return err
	}
	a.Journal.Save(&history.Record{Action: history.ActionCreate, Metric: name, Detail: string(guide.Type())})
	fmt.Fprintf(w, "Created metric %s (%s).\n", styles.AccentText.Render(name), guide.Descriptor())
	return nil
}

// UpdateUnits sets the unit of every entry of a metric, and with fileLevel
// its default unit too.
func (a *App) UpdateUnits(w io.Writer, name, unit string, fileLevel bool) error {
	name = util.NormalizeKey(name)
	n, err := a.Store.UpdateUnits(name, unit, fileLevel)
	if err != nil {
		a.Journal.Fail(history.ActionUnits, name, err)
		return err
	}
	a.Journal.Save(&history.Record{
		Action: history.ActionUnits,
		Metric: name,
		Detail: fmt.Sprintf("set %d entries to %q", n, unit),
	})
	fmt.Fprintf(w, "Updated %d entries of %s to %q.\n", n, name, unit)
	return nil
}
