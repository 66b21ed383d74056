package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

// In-memory stand-ins for the pgx repositories. They keep everything in
// slices and maps and hand out the same nil-on-missing results the real
// repositories do.

type fakeSlotStore struct {
	slots        []*model.Slot
	batchTitles  map[int64]string
	facultyNames map[int64]string
	nextID       int64
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{
		batchTitles:  map[int64]string{},
		facultyNames: map[int64]string{},
	}
}

func (f *fakeSlotStore) candidate(slot *model.Slot) schedule.Candidate {
	return schedule.Candidate{
		Slot:        slot,
		BatchTitle:  f.batchTitles[slot.BatchID],
		FacultyName: f.facultyNames[slot.FacultyID],
	}
}

func (f *fakeSlotStore) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	for _, slot := range f.slots {
		if slot.UUID == id {
			return slot, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) CandidatesForOverlap(ctx context.Context, weekday model.Weekday, batchID, facultyID int64) ([]schedule.Candidate, error) {
	var out []schedule.Candidate
	for _, slot := range f.slots {
		if slot.Weekday == weekday && (slot.BatchID == batchID || slot.FacultyID == facultyID) {
			out = append(out, f.candidate(slot))
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ListByBatch(ctx context.Context, batchID int64) ([]schedule.Candidate, error) {
	var out []schedule.Candidate
	for _, slot := range f.slots {
		if slot.BatchID == batchID {
			out = append(out, f.candidate(slot))
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ListByFaculty(ctx context.Context, facultyID int64) ([]schedule.Candidate, error) {
	var out []schedule.Candidate
	for _, slot := range f.slots {
		if slot.FacultyID == facultyID {
			out = append(out, f.candidate(slot))
		}
	}
	return out, nil
}

func (f *fakeSlotStore) CountByBatch(ctx context.Context, batchID int64) (int, error) {
	count := 0
	for _, slot := range f.slots {
		if slot.BatchID == batchID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSlotStore) Create(ctx context.Context, slot *model.Slot) error {
	f.nextID++
	slot.ID = f.nextID
	slot.UUID = uuid.New()
	slot.Created = time.Now()
	f.slots = append(f.slots, slot)
	return nil
}

func (f *fakeSlotStore) Update(ctx context.Context, slot *model.Slot) error {
	for i, existing := range f.slots {
		if existing.ID == slot.ID {
			f.slots[i] = slot
			return nil
		}
	}
	return nil
}

func (f *fakeSlotStore) Delete(ctx context.Context, id int64) error {
	f.slots = f.filter(func(s *model.Slot) bool { return s.ID != id })
	return nil
}

func (f *fakeSlotStore) DeleteByBatch(ctx context.Context, batchID int64) error {
	f.slots = f.filter(func(s *model.Slot) bool { return s.BatchID != batchID })
	return nil
}

func (f *fakeSlotStore) DeleteByFaculty(ctx context.Context, facultyID int64) error {
	f.slots = f.filter(func(s *model.Slot) bool { return s.FacultyID != facultyID })
	return nil
}

func (f *fakeSlotStore) filter(keep func(*model.Slot) bool) []*model.Slot {
	var out []*model.Slot
	for _, slot := range f.slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	return out
}

type fakeBatchStore struct {
	batches []*model.Batch
	nextID  int64
	deleted []int64
}

func (f *fakeBatchStore) add(adminID int64, title string, maxStudents int) *model.Batch {
	f.nextID++
	batch := &model.Batch{
		ID:          f.nextID,
		UUID:        uuid.New(),
		AdminID:     adminID,
		Title:       title,
		Active:      true,
		MaxStudents: maxStudents,
		Created:     time.Now(),
	}
	f.batches = append(f.batches, batch)
	return batch
}

func (f *fakeBatchStore) GetByID(ctx context.Context, id int64) (*model.Batch, error) {
	for _, batch := range f.batches {
		if batch.ID == id {
			return batch, nil
		}
	}
	return nil, nil
}

func (f *fakeBatchStore) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	for _, batch := range f.batches {
		if batch.UUID == id {
			return batch, nil
		}
	}
	return nil, nil
}

func (f *fakeBatchStore) ListByAdmin(ctx context.Context, adminID int64) ([]*model.Batch, error) {
	var out []*model.Batch
	for _, batch := range f.batches {
		if batch.AdminID == adminID {
			out = append(out, batch)
		}
	}
	return out, nil
}

func (f *fakeBatchStore) TitleExists(ctx context.Context, adminID int64, title string, excludeID int64) (bool, error) {
	for _, batch := range f.batches {
		if batch.AdminID == adminID && batch.ID != excludeID &&
			strings.EqualFold(batch.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBatchStore) Create(ctx context.Context, batch *model.Batch) error {
	f.nextID++
	batch.ID = f.nextID
	batch.UUID = uuid.New()
	batch.Active = true
	batch.Created = time.Now()
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeBatchStore) Update(ctx context.Context, batch *model.Batch) error {
	for i, existing := range f.batches {
		if existing.ID == batch.ID {
			f.batches[i] = batch
			return nil
		}
	}
	return nil
}

func (f *fakeBatchStore) SetActive(ctx context.Context, id int64, active bool) error {
	for _, batch := range f.batches {
		if batch.ID == id {
			batch.Active = active
		}
	}
	return nil
}

func (f *fakeBatchStore) DeleteCascade(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	var out []*model.Batch
	for _, batch := range f.batches {
		if batch.ID != id {
			out = append(out, batch)
		}
	}
	f.batches = out
	return nil
}

type fakeFacultyStore struct {
	faculties []*model.FacultyProfile
	nextID    int64
	assigned  map[int64][]*model.FacultyProfile
}

func (f *fakeFacultyStore) add(adminID int64, name string) *model.FacultyProfile {
	f.nextID++
	faculty := &model.FacultyProfile{
		ID:      f.nextID,
		UUID:    uuid.New(),
		AdminID: &adminID,
		Name:    name,
		Created: time.Now(),
	}
	f.faculties = append(f.faculties, faculty)
	return faculty
}

func (f *fakeFacultyStore) GetByID(ctx context.Context, id int64) (*model.FacultyProfile, error) {
	for _, faculty := range f.faculties {
		if faculty.ID == id {
			return faculty, nil
		}
	}
	return nil, nil
}

func (f *fakeFacultyStore) GetByUUID(ctx context.Context, id uuid.UUID) (*model.FacultyProfile, error) {
	for _, faculty := range f.faculties {
		if faculty.UUID == id {
			return faculty, nil
		}
	}
	return nil, nil
}

func (f *fakeFacultyStore) ListByAdmin(ctx context.Context, adminID int64) ([]*model.FacultyProfile, error) {
	var out []*model.FacultyProfile
	for _, faculty := range f.faculties {
		if faculty.AdminID != nil && *faculty.AdminID == adminID {
			out = append(out, faculty)
		}
	}
	return out, nil
}

func (f *fakeFacultyStore) ListAssignedToBatch(ctx context.Context, batchID int64) ([]*model.FacultyProfile, error) {
	return f.assigned[batchID], nil
}

func (f *fakeFacultyStore) NameExists(ctx context.Context, adminID int64, name string) (bool, error) {
	for _, faculty := range f.faculties {
		if faculty.AdminID != nil && *faculty.AdminID == adminID &&
			strings.EqualFold(faculty.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFacultyStore) Create(ctx context.Context, faculty *model.FacultyProfile) error {
	f.nextID++
	faculty.ID = f.nextID
	faculty.UUID = uuid.New()
	faculty.Created = time.Now()
	f.faculties = append(f.faculties, faculty)
	return nil
}

func (f *fakeFacultyStore) ClaimAccount(ctx context.Context, id int64) error {
	now := time.Now()
	for _, faculty := range f.faculties {
		if faculty.ID == id {
			faculty.PasswordSet = true
			faculty.Joined = &now
		}
	}
	return nil
}

func (f *fakeFacultyStore) Detach(ctx context.Context, id int64) error {
	for _, faculty := range f.faculties {
		if faculty.ID == id {
			faculty.AdminID = nil
		}
	}
	return nil
}

func (f *fakeFacultyStore) Delete(ctx context.Context, id int64) error {
	var out []*model.FacultyProfile
	for _, faculty := range f.faculties {
		if faculty.ID != id {
			out = append(out, faculty)
		}
	}
	f.faculties = out
	return nil
}

type fakeStudentStore struct {
	students []*model.StudentProfile
	nextID   int64
}

func (f *fakeStudentStore) add(batchID int64, name, email string) *model.StudentProfile {
	f.nextID++
	student := &model.StudentProfile{
		ID:      f.nextID,
		UUID:    uuid.New(),
		BatchID: &batchID,
		Name:    name,
		Email:   email,
		Joined:  time.Now(),
	}
	f.students = append(f.students, student)
	return student
}

func (f *fakeStudentStore) GetByUUID(ctx context.Context, id uuid.UUID) (*model.StudentProfile, error) {
	for _, student := range f.students {
		if student.UUID == id {
			return student, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) ListByBatch(ctx context.Context, batchID int64) ([]*model.StudentProfile, error) {
	var out []*model.StudentProfile
	for _, student := range f.students {
		if student.BatchID != nil && *student.BatchID == batchID {
			out = append(out, student)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) CountByBatch(ctx context.Context, batchID int64) (int, error) {
	students, _ := f.ListByBatch(ctx, batchID)
	return len(students), nil
}

func (f *fakeStudentStore) Create(ctx context.Context, student *model.StudentProfile) error {
	f.nextID++
	student.ID = f.nextID
	student.UUID = uuid.New()
	student.Joined = time.Now()
	f.students = append(f.students, student)
	return nil
}

func (f *fakeStudentStore) Detach(ctx context.Context, id int64) error {
	for _, student := range f.students {
		if student.ID == id {
			student.BatchID = nil
		}
	}
	return nil
}
