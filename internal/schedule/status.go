package schedule

import "time"

// JobStatus is one job's row in the operational status view.
type JobStatus struct {
	JobDefinition
	TargetMinute int // -1 until today's minute has been drawn
	FiredToday   bool
	LastResult   *LastResult
}

// StatusReport is the operational surface: per-job state plus the
// day's global gates.
type StatusReport struct {
	Date         string
	MessageCount int
	DailyCap     int
	QuietHours   bool
	CoolingDown  bool
	Jobs         []JobStatus
}

// ReadStatus builds a status report from the persisted snapshot. It
// works against the state file alone, so the status and watch
// commands never need to talk to a running daemon. A snapshot from an
// earlier day reports every job as pending with no target drawn yet.
func ReadStatus(jobs []JobDefinition, storePath string, quietStart, quietEnd, dailyCap int, now time.Time) StatusReport {
	st := loadState(storePath)
	sameDay := st.Date == now.Format(dayKey)

	rep := StatusReport{
		Date:       now.Format(dayKey),
		DailyCap:   dailyCap,
		QuietHours: inQuietBand(minuteOfDay(now), quietStart, quietEnd),
	}
	if sameDay {
		rep.MessageCount = st.DailyMessageCount
		rep.CoolingDown = now.Before(st.CooldownUntil)
	}

	for _, job := range jobs {
		js := JobStatus{JobDefinition: job, TargetMinute: -1}
		if sameDay {
			if s := st.Jobs[job.ID]; s != nil {
				js.TargetMinute = s.TargetMinute
				js.FiredToday = s.FiredToday
				js.LastResult = s.LastResult
			}
		}
		rep.Jobs = append(rep.Jobs, js)
	}
	return rep
}
