package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joebot/nudged/internal/config"
	"github.com/joebot/nudged/internal/schedule"
)

// RunStatus prints the scheduler's operational state: per-job targets
// and outcomes, the day's quota, and the global gates. It reads the
// persisted snapshot directly, so it works whether or not the daemon
// is running.
func RunStatus(cfg *config.Config) {
	rep := readReport(cfg, time.Now())

	fmt.Println()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("  %s nudged Status", Logo)) + DimStyle.Render("  "+rep.Date))
	fmt.Println()

	cfgPath := config.ConfigPath()
	fmt.Printf("  %-12s %s  %s\n", "Config", StatusBadge(fileExists(cfgPath)), DimStyle.Render(cfgPath))
	fmt.Printf("  %-12s %s  %s\n", "State", StatusBadge(fileExists(config.StatePath())), DimStyle.Render(config.StatePath()))
	fmt.Printf("  %-12s %d / %d sent\n", "Quota", rep.MessageCount, rep.DailyCap)
	fmt.Printf("  %-12s %s\n", "Quiet hours", activeBadge(rep.QuietHours))
	fmt.Printf("  %-12s %s\n", "Cooldown", activeBadge(rep.CoolingDown))
	fmt.Println()

	fmt.Println("  " + BoldStyle.Render("Jobs"))
	for _, job := range rep.Jobs {
		fmt.Printf("    %s  %-17s %-9s %-13s %s %s\n",
			firedBadge(job), job.ID, job.Category,
			DimStyle.Render(job.Window.String()),
			targetString(job), outcomeString(job.LastResult))
	}
	fmt.Println()

	fmt.Println("  " + BoldStyle.Render("Delivery"))
	fmt.Printf("    %s  Discord\n", StatusBadge(cfg.Channels.Discord.Enabled))
	fmt.Println()
}

func readReport(cfg *config.Config, now time.Time) schedule.StatusReport {
	quietStart, _ := schedule.ParseClock(cfg.Scheduler.QuietHours.Start)
	quietEnd, _ := schedule.ParseClock(cfg.Scheduler.QuietHours.End)
	return schedule.ReadStatus(schedule.Catalog(), config.StatePath(),
		quietStart, quietEnd, cfg.Scheduler.DailyCap, now)
}

func firedBadge(job schedule.JobStatus) string {
	if !job.FiredToday {
		return DimStyle.Render("·")
	}
	if job.LastResult == nil {
		return WarnStyle.Render("…")
	}
	switch job.LastResult.Status {
	case schedule.StatusSent:
		return OkStyle.Render("✓")
	case schedule.StatusFailed:
		return ErrStyle.Render("✗")
	default:
		return DimStyle.Render("-")
	}
}

func targetString(job schedule.JobStatus) string {
	if job.TargetMinute < 0 {
		return DimStyle.Render("——:——")
	}
	return schedule.ClockString(job.TargetMinute)
}

func outcomeString(r *schedule.LastResult) string {
	if r == nil {
		return DimStyle.Render("pending")
	}
	s := string(r.Status)
	if r.Detail != "" {
		detail := r.Detail
		if len(detail) > 48 {
			detail = detail[:48] + "…"
		}
		s += DimStyle.Render(" (" + detail + ")")
	}
	return s
}

func activeBadge(active bool) string {
	if active {
		return WarnStyle.Render("active")
	}
	return DimStyle.Render("inactive")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
