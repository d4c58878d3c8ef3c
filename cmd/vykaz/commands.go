package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vykaz/internal/config"
	"github.com/vykaz/internal/fund"
	"github.com/vykaz/internal/holiday"
	"github.com/vykaz/internal/summary"
	"github.com/vykaz/internal/timesheet"
	"github.com/vykaz/internal/visualization"
)

// --- Day commands ---

var dayCmd = &cobra.Command{
	Use:     "day",
	Aliases: []string{"d"},
	Short:   "Work with single days",
}

var dayAddCmd = &cobra.Command{
	Use:     "add <date> <start> [end]",
	Aliases: []string{"a"},
	Short:   "Add a work or absence entry to a day",
	Long: `Add an entry to a day's timeline. Without an end time the entry stays
open until "day end". The timeline is re-normalized after every change:
entries are sorted, missing end times filled from the next entry, and the
lunch break inserted automatically after 4.5 hours of continuous work.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}
		start := args[1]
		if !isValidClock(start) {
			return fmt.Errorf("invalid start time: %s (use HH:MM)", start)
		}

		absenceID, _ := cmd.Flags().GetString("absence")
		projectID, _ := cmd.Flags().GetString("project")
		note, _ := cmd.Flags().GetString("note")

		var entry timesheet.Activity
		if absenceID != "" {
			id, err := resolveAbsenceID(absenceID)
			if err != nil {
				return err
			}
			entry = timesheet.NewAbsence(start, &id)
		} else {
			var projPtr *string
			if projectID != "" {
				id, err := resolveProjectID(projectID)
				if err != nil {
					return err
				}
				projPtr = &id
			}
			entry = timesheet.NewWork(start, projPtr)
		}
		if len(args) == 3 {
			end := args[2]
			if !isValidClock(end) {
				return fmt.Errorf("invalid end time: %s (use HH:MM)", end)
			}
			entry.End = &end
		}
		entry.Notes = note

		activities, err := db.LoadDay(employeeID, date)
		if err != nil {
			return err
		}
		if timesheet.Open(activities) && entry.End == nil {
			return fmt.Errorf("day %s already has an open entry; close it first with: vykaz day end", date)
		}

		normalized := timesheet.NormalizeTimeline(append(activities, entry), nil)
		if err := db.SaveDay(employeeID, date, normalized); err != nil {
			return err
		}

		printDay(date, normalized)
		return nil
	},
}

var dayEndCmd = &cobra.Command{
	Use:     "end <date> <time>",
	Aliases: []string{"e"},
	Short:   "Close a day's open entry",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}
		end := args[1]
		if !isValidClock(end) {
			return fmt.Errorf("invalid end time: %s (use HH:MM)", end)
		}

		activities, err := db.LoadDay(employeeID, date)
		if err != nil {
			return err
		}
		if !timesheet.Open(activities) {
			return fmt.Errorf("day %s has no open entry", date)
		}

		normalized := timesheet.NormalizeTimeline(activities, &end)
		if err := db.SaveDay(employeeID, date, normalized); err != nil {
			return err
		}

		printDay(date, normalized)
		return nil
	},
}

var dayShowCmd = &cobra.Command{
	Use:     "show [date]",
	Aliases: []string{"s"},
	Short:   "Show a day's timeline",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		date := time.Now().Format("2006-01-02")
		if len(args) == 1 {
			if date, err = parseDate(args[0]); err != nil {
				return err
			}
		}

		activities, err := db.LoadDay(employeeID, date)
		if err != nil {
			return err
		}
		if len(activities) == 0 {
			fmt.Printf("%s: no entries\n", date)
			return nil
		}

		printDay(date, activities)
		return nil
	},
}

var dayRmCmd = &cobra.Command{
	Use:     "rm <date> <entry-id>",
	Aliases: []string{"del", "remove"},
	Short:   "Remove one entry from a day",
	Long: `Remove one entry by ID (or an unambiguous ID prefix). The remaining
timeline is re-normalized, so a break that is no longer needed disappears.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}

		activities, err := db.LoadDay(employeeID, date)
		if err != nil {
			return err
		}
		id, err := resolveEntryID(activities, args[1])
		if err != nil {
			return err
		}

		remaining := timesheet.RemoveActivity(activities, id)
		if err := db.SaveDay(employeeID, date, remaining); err != nil {
			return err
		}

		if len(remaining) == 0 {
			fmt.Printf("%s: no entries\n", date)
			return nil
		}
		printDay(date, remaining)
		return nil
	},
}

var dayClearCmd = &cobra.Command{
	Use:   "clear <date>",
	Short: "Remove all entries from a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Clear all entries of %s? This cannot be undone. Use --force to confirm.\n", date)
			return nil
		}

		if err := db.SaveDay(employeeID, date, nil); err != nil {
			return err
		}
		fmt.Printf("%s cleared\n", date)
		return nil
	},
}

var dayCopyMonth string

var dayCopyCmd = &cobra.Command{
	Use:     "copy <source-date> [target-date]...",
	Aliases: []string{"cp"},
	Short:   "Copy a day's entries to other days",
	Long: `Copy all entries of the source day to the target days. With --month
the targets are all workdays of the given month. Weekends, public holidays
and the source day itself are skipped. Copied entries get fresh IDs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		source, err := parseDate(args[0])
		if err != nil {
			return err
		}
		targets := args[1:]
		if dayCopyMonth != "" {
			year, month, err := parseMonthArg([]string{dayCopyMonth})
			if err != nil {
				return err
			}
			for _, date := range monthWorkdays(year, month) {
				if date != source {
					targets = append(targets, date)
				}
			}
		}
		if len(targets) == 0 {
			return fmt.Errorf("provide target dates or --month")
		}

		activities, err := db.LoadDay(employeeID, source)
		if err != nil {
			return err
		}
		if len(activities) == 0 {
			return fmt.Errorf("day %s has no entries to copy", source)
		}
		if timesheet.Open(activities) {
			return fmt.Errorf("day %s has an open entry; close it before copying", source)
		}

		copied := 0
		for _, arg := range targets {
			target, err := parseDate(arg)
			if err != nil {
				return err
			}
			if target == source {
				log.Warn().Str("date", target).Msg("skipping source day")
				continue
			}
			day, _ := time.Parse("2006-01-02", target)
			if !fund.IsWorkday(day, holiday.ForYear(day.Year())) {
				log.Warn().Str("date", target).Msg("skipping weekend or holiday")
				continue
			}
			if err := db.SaveDay(employeeID, target, timesheet.CopyActivities(activities)); err != nil {
				return err
			}
			copied++
		}

		fmt.Printf("Copied %s to %d day(s)\n", source, copied)
		return nil
	},
}

// --- Month commands ---

var monthCmd = &cobra.Command{
	Use:     "month [YYYY-MM]",
	Aliases: []string{"m"},
	Short:   "Show the monthly summary",
	Long: `Display the month's totals reconciled against the work-time fund.
Public holidays without entries are assigned the holiday absence first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		year, month, err := parseMonthArg(args)
		if err != nil {
			return err
		}

		if err := assignHolidayMarkers(employeeID, year, month); err != nil {
			return err
		}

		days, err := db.LoadMonth(employeeID, year, month)
		if err != nil {
			return err
		}
		projects, err := db.Projects()
		if err != nil {
			return err
		}
		absences, err := db.AbsenceTypes()
		if err != nil {
			return err
		}

		cal := holiday.ForYear(year)
		s := summary.ForMonth(days, year, month, projects, absences, cal, timesheet.HolidayAbsenceID(absences))

		fmt.Printf("Month: %04d-%02d | Fund: %.2fh | Reported: %.2fh | Difference: %+.2fh\n",
			year, int(month), s.Fund, s.Reported, s.Difference)
		fmt.Printf("  Worked: %.2fh | Overtime: %.2fh | Holiday work: %.2fh | Absence: %.2fh\n",
			s.RegularHours, s.OvertimeHours, s.HolidayWorkHours, s.AbsenceHours)

		if len(s.Projects) > 0 {
			fmt.Println("\nProjects:")
			for _, p := range s.Projects {
				fmt.Printf("  %-30s %7.2fh  (overtime %.2fh)\n", p.Name, p.Hours, p.Overtime)
			}
		}
		if len(s.Absences) > 0 {
			fmt.Println("\nAbsences:")
			for _, a := range s.Absences {
				fmt.Printf("  %-30s %7.2fh\n", a.Name, a.Hours)
			}
		}
		return nil
	},
}

var fundCmd = &cobra.Command{
	Use:   "fund [YYYY-MM]",
	Short: "Show the month's work-time fund",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseMonthArg(args)
		if err != nil {
			return err
		}
		cal := holiday.ForYear(year)
		workdays := fund.WorkdaysInMonth(year, month, cal)
		fmt.Printf("Fund %04d-%02d: %d workdays x %dh = %.2fh\n",
			year, int(month), workdays, int(fund.StandardDailyHours), fund.MonthFund(year, month, cal))
		return nil
	},
}

var holidaysCmd = &cobra.Command{
	Use:   "holidays [year]",
	Short: "List public holidays of a year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := time.Now().Year()
		if len(args) == 1 {
			if _, err := fmt.Sscanf(args[0], "%d", &year); err != nil {
				return fmt.Errorf("invalid year: %s", args[0])
			}
		}
		for _, date := range holiday.ForYear(year).Strings() {
			fmt.Println(date)
		}
		return nil
	},
}

// assignHolidayMarkers fills every empty public holiday of the month with
// the holiday absence, mirroring what the summary expects. Days that
// already have entries are left alone.
func assignHolidayMarkers(employeeID string, year int, month time.Month) error {
	absences, err := db.AbsenceTypes()
	if err != nil {
		return err
	}
	holidayID := timesheet.HolidayAbsenceID(absences)
	if holidayID == "" {
		return nil
	}

	days, err := db.LoadMonth(employeeID, year, month)
	if err != nil {
		return err
	}
	cal := holiday.ForYear(year)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		date := holiday.ISODate(day)
		if !cal.Contains(date) || day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if len(days[date]) > 0 {
			continue
		}
		if err := db.SaveDay(employeeID, date, timesheet.NewHolidayMarker(holidayID)); err != nil {
			return err
		}
		log.Info().Str("date", date).Msg("assigned public holiday absence")
	}
	return nil
}

// --- Catalog commands ---

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p", "projects"},
	Short:   "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := db.Projects()
		if err != nil {
			return err
		}
		for _, p := range projects {
			marker := ""
			if p.Archived {
				marker = " [archived]"
			}
			fmt.Printf("%s  %s  %s%s\n", p.ID, p.Color, p.Name, marker)
		}
		return nil
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		if color == "" {
			color = fmt.Sprintf("#%06x", rand.Intn(0x1000000))
		}
		p := timesheet.Project{
			ID:    uuid.NewString(),
			Name:  strings.Join(args, " "),
			Color: color,
		}
		if err := db.InsertProject(p); err != nil {
			return err
		}
		fmt.Printf("Added project %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Toggle a project's archived flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := db.Projects()
		if err != nil {
			return err
		}
		for _, p := range projects {
			if p.ID == args[0] {
				p.Archived = !p.Archived
				if err := db.UpdateProject(p); err != nil {
					return err
				}
				state := "archived"
				if !p.Archived {
					state = "restored"
				}
				fmt.Printf("Project %s %s\n", p.Name, state)
				return nil
			}
		}
		return fmt.Errorf("project %s not found", args[0])
	},
}

var projectRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"del", "remove"},
	Short:   "Delete a project",
	Long:    `Delete a project. Entries booked on it keep their hours but lose the reference.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete project %s? Booked entries lose the reference. Use --force to confirm.\n", args[0])
			return nil
		}
		if err := db.DeleteProject(args[0]); err != nil {
			return err
		}
		fmt.Printf("Project %s deleted\n", args[0])
		return nil
	},
}

var absenceCmd = &cobra.Command{
	Use:     "absence",
	Aliases: []string{"absences"},
	Short:   "Manage absence types",
}

var absenceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List absence types",
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := db.AbsenceTypes()
		if err != nil {
			return err
		}
		for _, a := range types {
			fmt.Printf("%s  %s\n", a.ID, a.Name)
		}
		return nil
	},
}

var absenceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an absence type",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := timesheet.AbsenceType{
			ID:   uuid.NewString(),
			Name: strings.Join(args, " "),
		}
		if err := db.InsertAbsenceType(a); err != nil {
			return err
		}
		fmt.Printf("Added absence type %s (%s)\n", a.Name, a.ID)
		return nil
	},
}

var absenceRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"del", "remove"},
	Short:   "Delete an absence type",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete absence type %s? Booked entries lose the reference. Use --force to confirm.\n", args[0])
			return nil
		}
		if err := db.DeleteAbsenceType(args[0]); err != nil {
			return err
		}
		fmt.Printf("Absence type %s deleted\n", args[0])
		return nil
	},
}

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"emp", "employees"},
	Short:   "Manage employees",
}

var employeeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		employees, err := db.Employees()
		if err != nil {
			return err
		}
		for _, e := range employees {
			marker := ""
			if e.Archived {
				marker = " [archived]"
			}
			if e.ID == cfg.ActiveEmployee {
				marker += " *"
			}
			fmt.Printf("%s  %s%s\n", e.ID, e.Name, marker)
		}
		return nil
	},
}

var employeeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an employee",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := timesheet.Employee{
			ID:   uuid.NewString(),
			Name: strings.Join(args, " "),
		}
		if err := db.InsertEmployee(e); err != nil {
			return err
		}
		fmt.Printf("Added employee %s (%s)\n", e.Name, e.ID)
		return nil
	},
}

var employeeUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Set the active employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := db.GetEmployee(args[0])
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("employee %s not found", args[0])
		}
		cfg.ActiveEmployee = e.ID
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Active employee: %s\n", e.Name)
		return nil
	},
}

var employeeArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Toggle an employee's archived flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := db.GetEmployee(args[0])
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("employee %s not found", args[0])
		}
		e.Archived = !e.Archived
		if err := db.UpdateEmployee(*e); err != nil {
			return err
		}
		state := "archived"
		if !e.Archived {
			state = "restored"
		}
		fmt.Printf("Employee %s %s\n", e.Name, state)
		return nil
	},
}

var employeeRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"del", "remove"},
	Short:   "Delete an employee and all of their days",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete employee %s including all days? This cannot be undone. Use --force to confirm.\n", args[0])
			return nil
		}
		if err := db.DeleteEmployee(args[0]); err != nil {
			return err
		}
		fmt.Printf("Employee %s deleted\n", args[0])
		return nil
	},
}

// --- Export commands ---

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"exp"},
	Short:   "Export a month to a file",
}

var exportReportCmd = &cobra.Command{
	Use:   "report [YYYY-MM]",
	Short: "Write the month report as Markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		year, month, err := parseMonthArg(args)
		if err != nil {
			return err
		}
		if err := assignHolidayMarkers(employeeID, year, month); err != nil {
			return err
		}
		path, err := reporter.WriteMarkdown(employeeID, year, month)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [YYYY-MM]",
	Short: "Write the month as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		year, month, err := parseMonthArg(args)
		if err != nil {
			return err
		}
		path, err := reporter.WriteCSV(employeeID, year, month)
		if err != nil {
			return err
		}
		fmt.Printf("CSV written to %s\n", path)
		return nil
	},
}

var exportSVGCmd = &cobra.Command{
	Use:   "svg [YYYY-MM]",
	Short: "Write the month chart as SVG",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeID, err := activeEmployeeID(cmd)
		if err != nil {
			return err
		}
		year, month, err := parseMonthArg(args)
		if err != nil {
			return err
		}

		days, err := db.LoadMonth(employeeID, year, month)
		if err != nil {
			return err
		}
		cal := holiday.ForYear(year)
		dayHours := make(map[string]float64, len(days))
		total := 0.0
		for date, activities := range days {
			totals := timesheet.ComputeTotals(activities)
			dayHours[date] = totals.Worked
			total += totals.Worked
		}

		svg := visualizer.GenerateMonthSVG(&visualization.MonthView{
			Year:       year,
			Month:      month,
			DayHours:   dayHours,
			TotalHours: total,
			FundHours:  fund.MonthFund(year, month, cal),
			Calendar:   cal,
		})

		if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
			return err
		}
		path := fmt.Sprintf("%s/%04d-%02d.svg", cfg.ReportDir, year, int(month))
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("Chart written to %s\n", path)
		return nil
	},
}

// --- Backup commands ---

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import JSON backups",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup file",
	Long: `Write a full backup of all data, or with --single a backup of just the
active employee for hand-over.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		single, _ := cmd.Flags().GetBool("single")

		var path string
		var size int64
		var err error
		if single {
			employeeID, rerr := activeEmployeeID(cmd)
			if rerr != nil {
				return rerr
			}
			path, size, err = backupMgr.ExportEmployee(cfg.BackupDir, employeeID)
		} else {
			path, size, err = backupMgr.ExportFull(cfg.BackupDir)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Backup written to %s (%s)\n", path, humanize.Bytes(uint64(size)))
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore from a backup file",
	Long: `Restore from a backup file. A full backup replaces all data; an
employee backup merges that employee's days into the existing data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Println("Importing may overwrite existing data. Use --force to confirm.")
			return nil
		}
		msg, err := backupMgr.Import(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Import done: %s\n", msg)
		return nil
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for vykaz.

To load completions:

Bash:
  $ source <(vykaz completion bash)

Zsh:
  $ vykaz completion zsh > "${fpath[1]}/_vykaz"

Fish:
  $ vykaz completion fish > ~/.config/fish/completions/vykaz.fish

PowerShell:
  PS> vykaz completion powershell > vykaz.ps1
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(os.Stdout)
		}
		return nil
	},
}

// --- Helpers ---

// activeEmployeeID resolves the employee commands act on: the --employee
// flag, the configured active employee, or the single existing one.
func activeEmployeeID(cmd *cobra.Command) (string, error) {
	employees, err := db.Employees()
	if err != nil {
		return "", err
	}

	if flag, _ := cmd.Flags().GetString("employee"); flag != "" {
		for _, e := range employees {
			if e.ID == flag || strings.EqualFold(e.Name, flag) {
				return e.ID, nil
			}
		}
		return "", fmt.Errorf("employee %q not found", flag)
	}

	if cfg.ActiveEmployee != "" {
		for _, e := range employees {
			if e.ID == cfg.ActiveEmployee {
				return e.ID, nil
			}
		}
		log.Warn().Str("id", cfg.ActiveEmployee).Msg("configured active employee no longer exists")
	}

	var active []timesheet.Employee
	for _, e := range employees {
		if !e.Archived {
			active = append(active, e)
		}
	}
	if len(active) == 1 {
		return active[0].ID, nil
	}
	if len(active) == 0 {
		return "", fmt.Errorf("no employees yet; create one with: vykaz employee add <name>")
	}
	return "", fmt.Errorf("multiple employees; pick one with --employee or: vykaz employee use <id>")
}

func resolveProjectID(ref string) (string, error) {
	projects, err := db.Projects()
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("project %q not found", ref)
}

func resolveAbsenceID(ref string) (string, error) {
	types, err := db.AbsenceTypes()
	if err != nil {
		return "", err
	}
	for _, a := range types {
		if a.ID == ref || strings.EqualFold(a.Name, ref) {
			return a.ID, nil
		}
	}
	return "", fmt.Errorf("absence type %q not found", ref)
}

// resolveEntryID matches a full ID or an unambiguous prefix.
func resolveEntryID(activities []timesheet.Activity, ref string) (string, error) {
	var matches []string
	for _, a := range activities {
		if a.ID == ref {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, ref) {
			matches = append(matches, a.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no entry matches %q", ref)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func printDay(date string, activities []timesheet.Activity) {
	projects, _ := db.Projects()
	types, _ := db.AbsenceTypes()
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}
	absenceNames := make(map[string]string, len(types))
	for _, a := range types {
		absenceNames[a.ID] = a.Name
	}

	fmt.Printf("%s:\n", date)
	for _, a := range activities {
		end := "..."
		if a.End != nil {
			end = *a.End
		}
		label := ""
		switch {
		case a.Kind == timesheet.KindBreak:
			label = a.Notes
		case a.Kind == timesheet.KindAbsence && a.AbsenceID != nil:
			label = absenceNames[*a.AbsenceID]
		case a.Kind == timesheet.KindWork && a.ProjectID != nil:
			label = projectNames[*a.ProjectID]
		case a.Kind == timesheet.KindWork:
			label = "Bez projektu"
		}
		if a.Kind != timesheet.KindBreak && a.Notes != "" {
			label += " - " + a.Notes
		}
		fmt.Printf("  %s  %s-%s  %s\n", shortID(a.ID), a.Start, end, label)
	}

	totals := timesheet.ComputeTotals(activities)
	fmt.Printf("  Worked: %.2fh | Regular: %.2fh | Overtime: %.2fh\n",
		totals.Worked, totals.Regular, totals.Overtime)
}

// shortID truncates for display; imported data may carry non-UUID IDs.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parseDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return t.Format("2006-01-02"), nil
}

func parseMonthArg(args []string) (int, time.Month, error) {
	if len(args) == 0 {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month: %s (use YYYY-MM)", args[0])
	}
	return t.Year(), t.Month(), nil
}

// monthWorkdays lists the business days of a month as YYYY-MM-DD strings.
func monthWorkdays(year int, month time.Month) []string {
	cal := holiday.ForYear(year)
	var days []string
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if fund.IsWorkday(d, cal) {
			days = append(days, d.Format("2006-01-02"))
		}
	}
	return days
}

func isValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func init() {
	dayCmd.AddCommand(dayAddCmd)
	dayCmd.AddCommand(dayEndCmd)
	dayCmd.AddCommand(dayShowCmd)
	dayCmd.AddCommand(dayRmCmd)
	dayCmd.AddCommand(dayClearCmd)
	dayCopyCmd.Flags().StringVar(&dayCopyMonth, "month", "", "copy to all workdays of the month (YYYY-MM)")
	dayCmd.AddCommand(dayCopyCmd)

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectArchiveCmd)
	projectCmd.AddCommand(projectRmCmd)

	absenceCmd.AddCommand(absenceListCmd)
	absenceCmd.AddCommand(absenceAddCmd)
	absenceCmd.AddCommand(absenceRmCmd)

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeAddCmd)
	employeeCmd.AddCommand(employeeUseCmd)
	employeeCmd.AddCommand(employeeArchiveCmd)
	employeeCmd.AddCommand(employeeRmCmd)

	exportCmd.AddCommand(exportReportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportSVGCmd)

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)

	dayAddCmd.Flags().StringP("project", "p", "", "Project (ID or name)")
	dayAddCmd.Flags().StringP("absence", "a", "", "Absence type (ID or name); makes the entry an absence")
	dayAddCmd.Flags().StringP("note", "n", "", "Note for the entry")

	dayClearCmd.Flags().BoolP("force", "f", false, "Clear without confirmation")
	projectRmCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
	absenceRmCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
	employeeRmCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
	backupExportCmd.Flags().Bool("single", false, "Export only the active employee")
	backupImportCmd.Flags().BoolP("force", "f", false, "Import without confirmation")
}
