package api

import (
	"fmt"
	"time"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
	"github.com/sksingtn/trackr-backend/internal/service"
)

type slotView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Weekday     string `json:"weekday"`
	Duration    string `json:"duration"`
	Created     string `json:"created"`
	FacultyName string `json:"facultyName"`
	BatchTitle  string `json:"batchTitle"`
}

func newSlotView(c schedule.Candidate, now time.Time) slotView {
	return slotView{
		ID:          c.Slot.UUID.String(),
		Title:       c.Slot.Title,
		StartTime:   c.Slot.StartTime.String(),
		EndTime:     c.Slot.EndTime.String(),
		Weekday:     c.Slot.Weekday.String(),
		Duration:    fmt.Sprintf("%d Mins", c.Slot.DurationMinutes()),
		Created:     elapsedString(c.Slot.Created, now),
		FacultyName: c.FacultyName,
		BatchTitle:  c.BatchTitle,
	}
}

type weekdayBucket struct {
	Weekday string     `json:"weekday"`
	Slots   []slotView `json:"slots"`
}

func newWeekView(view *service.WeekView, now time.Time) map[string]interface{} {
	buckets := make([]weekdayBucket, 0, model.DaysInWeek)
	for day, slots := range view.Days {
		bucket := weekdayBucket{
			Weekday: model.Weekday(day).String(),
			Slots:   make([]slotView, 0, len(slots)),
		}
		for _, c := range slots {
			bucket.Slots = append(bucket.Slots, newSlotView(c, now))
		}
		buckets = append(buckets, bucket)
	}

	return map[string]interface{}{
		"currentWeekday": view.CurrentWeekday.String(),
		"weekdayData":    buckets,
	}
}

// weekdayLabel shows "Today" when the slot falls on the current weekday.
func weekdayLabel(slotDay, currentDay model.Weekday) string {
	if slotDay == currentDay {
		return "Today"
	}
	return slotDay.String()
}

func newTimelineView(tl *schedule.Timeline, now time.Time) map[string]interface{} {
	currentDay := model.WeekdayFromTime(now)
	view := map[string]interface{}{
		"previous": nil,
		"ongoing":  nil,
		"next":     nil,
	}

	if tl.Previous != nil {
		view["previous"] = map[string]interface{}{
			"title":       tl.Previous.Slot.Title,
			"batchTitle":  tl.Previous.BatchTitle,
			"startTime":   tl.Previous.Slot.StartTime.String(),
			"endTime":     tl.Previous.Slot.EndTime.String(),
			"weekday":     weekdayLabel(tl.Previous.Slot.Weekday, currentDay),
			"endedSince":  tl.Previous.EndedSinceSeconds,
			"facultyName": tl.Previous.FacultyName,
		}
	}

	if tl.Ongoing != nil {
		view["ongoing"] = map[string]interface{}{
			"title":          tl.Ongoing.Slot.Title,
			"batchTitle":     tl.Ongoing.BatchTitle,
			"startTime":      tl.Ongoing.Slot.StartTime.String(),
			"endTime":        tl.Ongoing.Slot.EndTime.String(),
			"totalSeconds":   tl.Ongoing.TotalSeconds,
			"elapsedSeconds": tl.Ongoing.ElapsedSeconds,
			"facultyName":    tl.Ongoing.FacultyName,
		}
	}

	if tl.Next != nil {
		view["next"] = map[string]interface{}{
			"title":       tl.Next.Slot.Title,
			"batchTitle":  tl.Next.BatchTitle,
			"startTime":   tl.Next.Slot.StartTime.String(),
			"endTime":     tl.Next.Slot.EndTime.String(),
			"weekday":     weekdayLabel(tl.Next.Slot.Weekday, currentDay),
			"startsIn":    tl.Next.StartsInSeconds,
			"facultyName": tl.Next.FacultyName,
		}
	}

	return view
}

type batchView struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	IsActive        bool   `json:"isActive"`
	OnboardStudents bool   `json:"onboardStudents"`
	MaxStudents     int    `json:"maxStudents"`
	TotalStudents   int    `json:"totalStudents"`
	TotalClasses    int    `json:"totalClasses"`
	TotalFaculties  int    `json:"totalFaculties"`
	InviteLink      string `json:"inviteLink"`
	Created         string `json:"created"`
}

func newBatchView(st *service.BatchStats) batchView {
	return batchView{
		ID:              st.Batch.UUID.String(),
		Title:           st.Batch.Title,
		IsActive:        st.Batch.Active,
		OnboardStudents: st.Batch.OnboardStudents,
		MaxStudents:     st.Batch.MaxStudents,
		TotalStudents:   st.TotalStudents,
		TotalClasses:    st.TotalClasses,
		TotalFaculties:  st.TotalFaculties,
		InviteLink:      st.Batch.UUID.String(),
		Created:         st.Batch.Created.Format("02 Jan 2006"),
	}
}

type facultyView struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Status string  `json:"status"`
	Joined *string `json:"joined"`
}

func newFacultyView(f *model.FacultyProfile) facultyView {
	view := facultyView{
		ID:     f.UUID.String(),
		Name:   f.Name,
		Email:  f.Email,
		Status: string(f.Status()),
	}
	if f.Joined != nil {
		joined := f.Joined.Format("02 Jan 2006")
		view.Joined = &joined
	}
	return view
}

type studentView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Joined string `json:"joined"`
}

func newStudentView(s *model.StudentProfile) studentView {
	return studentView{
		ID:     s.UUID.String(),
		Name:   s.Name,
		Email:  s.Email,
		Joined: s.Joined.Format("02 Jan 2006"),
	}
}
