package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/service"
)

var validate = validator.New()

func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("malformed request body")
	}
	if err := validate.Struct(dst); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			field := fieldErrors[0]
			return fmt.Errorf("%s => validation failed on '%s'", field.Field(), field.Tag())
		}
		return err
	}
	return nil
}

type createSlotRequest struct {
	Title     string `json:"title" validate:"required,max=100"`
	Batch     string `json:"batch" validate:"required,uuid"`
	Faculty   string `json:"faculty" validate:"required,uuid"`
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func (req *createSlotRequest) toInput() (service.CreateSlotInput, error) {
	var in service.CreateSlotInput

	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return in, fmt.Errorf("start_time => must be HH:MM")
	}
	end, err := model.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return in, fmt.Errorf("end_time => must be HH:MM")
	}

	in = service.CreateSlotInput{
		Title:       req.Title,
		Weekday:     model.Weekday(req.Weekday),
		StartTime:   start,
		EndTime:     end,
		BatchUUID:   uuid.MustParse(req.Batch),
		FacultyUUID: uuid.MustParse(req.Faculty),
	}
	return in, nil
}

type updateSlotRequest struct {
	Title     string  `json:"title" validate:"required,max=100"`
	Batch     *string `json:"batch" validate:"omitempty,uuid"`
	Faculty   string  `json:"faculty" validate:"required,uuid"`
	Weekday   int     `json:"weekday" validate:"min=0,max=6"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
}

func (req *updateSlotRequest) toInput() (service.UpdateSlotInput, error) {
	var in service.UpdateSlotInput

	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return in, fmt.Errorf("start_time => must be HH:MM")
	}
	end, err := model.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return in, fmt.Errorf("end_time => must be HH:MM")
	}

	in = service.UpdateSlotInput{
		Title:       req.Title,
		Weekday:     model.Weekday(req.Weekday),
		StartTime:   start,
		EndTime:     end,
		FacultyUUID: uuid.MustParse(req.Faculty),
	}
	if req.Batch != nil {
		batchUUID := uuid.MustParse(*req.Batch)
		in.BatchUUID = &batchUUID
	}
	return in, nil
}

type batchRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	OnboardStudents bool   `json:"onboard_students"`
	MaxStudents     int    `json:"max_students" validate:"required"`
}

type addFacultyRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type claimInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

type onboardStudentRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
}

type removeStudentsRequest struct {
	Students []string `json:"students" validate:"required,dive,uuid"`
}

type broadcastRequest struct {
	Target string `json:"target" validate:"required"`
	Text   string `json:"text" validate:"required"`
}
