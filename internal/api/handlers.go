package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
	"github.com/sksingtn/trackr-backend/internal/service"
	"github.com/sksingtn/trackr-backend/internal/timetable"
)

// Handler exposes the scheduling services over HTTP.
type Handler struct {
	slots      *service.SlotService
	batches    *service.BatchService
	faculties  *service.FacultyService
	students   *service.StudentService
	broadcasts *service.BroadcastService
	timetables *service.TimetableService
	clock      schedule.Clock
	logger     *zap.Logger
}

func NewHandler(
	slots *service.SlotService,
	batches *service.BatchService,
	faculties *service.FacultyService,
	students *service.StudentService,
	broadcasts *service.BroadcastService,
	timetables *service.TimetableService,
	clock schedule.Clock,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		slots:      slots,
		batches:    batches,
		faculties:  faculties,
		students:   students,
		broadcasts: broadcasts,
		timetables: timetables,
		clock:      clock,
		logger:     logger,
	}
}

// pathUUID parses the named chi URL parameter as a UUID. A malformed value
// is reported the same way as a missing resource so identifiers cannot be
// probed.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, schedule.ErrSlotNotFound
	}
	return id, nil
}

func (h *Handler) now(admin *model.AdminProfile) time.Time {
	return h.clock.Now().In(admin.Location())
}

func (h *Handler) createSlot(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	var req createSlotRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	slot, err := h.slots.CreateSlot(r.Context(), admin, in)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	created(w, newSlotView(*slot, h.now(admin)))
}

func (h *Handler) updateSlot(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	slotUUID, err := pathUUID(r, "slotID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	var req updateSlotRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	slot, err := h.slots.UpdateSlot(r.Context(), admin, slotUUID, in)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newSlotView(*slot, h.now(admin)))
}

func (h *Handler) deleteSlot(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	slotUUID, err := pathUUID(r, "slotID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	slot, err := h.slots.DeleteSlot(r.Context(), admin, slotUUID)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"id": slot.UUID.String(), "title": slot.Title})
}

func (h *Handler) listBatches(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	stats, err := h.batches.ListBatches(r.Context(), admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	views := make([]batchView, 0, len(stats))
	for _, st := range stats {
		views = append(views, newBatchView(st))
	}
	ok(w, views)
}

func (h *Handler) createBatch(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	var req batchRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	batch, err := h.batches.CreateBatch(r.Context(), admin, req.Title, req.OnboardStudents, req.MaxStudents)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	created(w, map[string]interface{}{"id": batch.UUID.String(), "title": batch.Title})
}

func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	stats, err := h.batches.GetBatch(r.Context(), admin, batchUUID)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	view := map[string]interface{}{
		"batch":     newBatchView(stats),
		"faculties": facultyViews(stats.Faculties),
	}
	ok(w, view)
}

func (h *Handler) updateBatch(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	var req batchRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	batch, err := h.batches.UpdateBatch(r.Context(), admin, batchUUID, req.Title, req.OnboardStudents, req.MaxStudents)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"id": batch.UUID.String(), "title": batch.Title})
}

func (h *Handler) setBatchActive(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	var req setActiveRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.batches.SetActive(r.Context(), admin, batchUUID, *req.Active); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"active": *req.Active})
}

func (h *Handler) previewBatchDelete(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	preview, err := h.batches.DeletePreview(r.Context(), admin, batchUUID)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	now := h.now(admin)
	slots := make([]slotView, 0, len(preview.Slots))
	for _, c := range preview.Slots {
		slots = append(slots, newSlotView(c, now))
	}
	students := make([]studentView, 0, len(preview.Students))
	for _, s := range preview.Students {
		students = append(students, newStudentView(s))
	}
	ok(w, map[string]interface{}{"slots": slots, "students": students})
}

func (h *Handler) deleteBatch(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	if err := h.batches.DeleteBatch(r.Context(), admin, batchUUID); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"id": batchUUID.String()})
}

func (h *Handler) batchTimetable(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	stats, err := h.ownedBatch(r)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	week, err := h.timetables.BatchWeek(r.Context(), stats.Batch, admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newWeekView(week, h.now(admin)))
}

func (h *Handler) batchTimeline(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	stats, err := h.ownedBatch(r)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	tl, err := h.timetables.BatchTimeline(r.Context(), stats.Batch, admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newTimelineView(tl, h.now(admin)))
}

func (h *Handler) batchTimetableImage(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	stats, err := h.ownedBatch(r)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	week, err := h.timetables.BatchWeek(r.Context(), stats.Batch, admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	png, err := timetable.RenderWeek(stats.Batch.Title, week.Days, week.CurrentWeekday)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) ownedBatch(r *http.Request) (*service.BatchStats, error) {
	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		return nil, err
	}
	return h.batches.GetBatch(r.Context(), adminFrom(r), batchUUID)
}

func (h *Handler) listFaculties(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	faculties, err := h.faculties.ListFaculties(r.Context(), admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, facultyViews(faculties))
}

func facultyViews(faculties []*model.FacultyProfile) []facultyView {
	views := make([]facultyView, 0, len(faculties))
	for _, f := range faculties {
		views = append(views, newFacultyView(f))
	}
	return views
}

func (h *Handler) addFaculty(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	var req addFacultyRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	faculty, err := h.faculties.AddFaculty(r.Context(), admin, req.Name, req.Email)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	created(w, newFacultyView(faculty))
}

func (h *Handler) getFaculty(w http.ResponseWriter, r *http.Request) {
	faculty, err := h.ownedFaculty(r)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newFacultyView(faculty))
}

func (h *Handler) removeFaculty(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	facultyUUID, err := pathUUID(r, "facultyID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	if err := h.faculties.RemoveFaculty(r.Context(), admin, facultyUUID); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"id": facultyUUID.String()})
}

func (h *Handler) facultyTimetable(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	faculty, err := h.ownedFaculty(r)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	week, err := h.timetables.FacultyWeek(r.Context(), faculty, admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newWeekView(week, h.now(admin)))
}

func (h *Handler) facultyTimeline(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	faculty, err := h.ownedFaculty(r)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	tl, err := h.timetables.FacultyTimeline(r.Context(), faculty, admin)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newTimelineView(tl, h.now(admin)))
}

func (h *Handler) ownedFaculty(r *http.Request) (*model.FacultyProfile, error) {
	facultyUUID, err := pathUUID(r, "facultyID")
	if err != nil {
		return nil, err
	}
	return h.faculties.GetFaculty(r.Context(), adminFrom(r), facultyUUID)
}

func (h *Handler) verifyInvite(w http.ResponseWriter, r *http.Request) {
	faculty, err := h.faculties.VerifyInvite(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"name": faculty.Name, "email": faculty.Email})
}

func (h *Handler) claimInvite(w http.ResponseWriter, r *http.Request) {
	var req claimInviteRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	faculty, err := h.faculties.ClaimInvite(r.Context(), req.Token)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, newFacultyView(faculty))
}

func (h *Handler) onboardStudent(w http.ResponseWriter, r *http.Request) {
	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	var req onboardStudentRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	student, err := h.students.Onboard(r.Context(), batchUUID, req.Name, req.Email)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	created(w, newStudentView(student))
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	batchUUID, err := pathUUID(r, "batchID")
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	students, err := h.students.ListByBatch(r.Context(), admin, batchUUID)
	if err != nil {
		fail(w, h.logger, err)
		return
	}

	views := make([]studentView, 0, len(students))
	for _, s := range students {
		views = append(views, newStudentView(s))
	}
	ok(w, views)
}

func (h *Handler) removeStudents(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	var req removeStudentsRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	studentUUIDs := make([]uuid.UUID, 0, len(req.Students))
	for _, raw := range req.Students {
		studentUUIDs = append(studentUUIDs, uuid.MustParse(raw))
	}

	if err := h.students.Remove(r.Context(), admin, studentUUIDs); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, map[string]interface{}{"removed": len(studentUUIDs)})
}

func (h *Handler) sendBroadcast(w http.ResponseWriter, r *http.Request) {
	admin := adminFrom(r)

	var req broadcastRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	receivers, err := h.broadcasts.Send(r.Context(), admin, req.Target, req.Text)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	created(w, map[string]interface{}{"receivers": receivers})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]interface{}{"time": h.clock.Now().UTC().Format(time.RFC3339)})
}
