package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pttracker/pttracker/internal/ctxkeys"
	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
	"github.com/pttracker/pttracker/internal/service"
	"github.com/pttracker/pttracker/internal/ui"
	"github.com/pttracker/pttracker/internal/validation"
)

type goalHandler struct {
	clientService *service.ClientService
	goalService   *service.GoalService
}

func NewGoalHandler(clientService *service.ClientService, goalService *service.GoalService) *goalHandler {
	return &goalHandler{
		clientService: clientService,
		goalService:   goalService,
	}
}

type editGoalData struct {
	Client *model.Client
	Goal   *model.Goal
}

func (h *goalHandler) Create(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, err := pathID(r, "client_id")
	if err != nil {
		notFound(w, r, err)
		return
	}

	title := r.FormValue("newGoal")
	notes := r.FormValue("newGoalNotes")

	// Validation and uniqueness failures re-render the client detail view
	// with the submitted values preserved
	rerender := func(message string) {
		page := queryPage(r)
		client, loadErr := h.clientService.ByIDPaginated(coach.Username, clientID, page)
		if loadErr != nil {
			notFound(w, r, loadErr)
			return
		}
		pageCount, loadErr := h.goalService.PageCount(coach.Username, clientID)
		if loadErr != nil {
			notFound(w, r, loadErr)
			return
		}
		render(w, r, "client.html", ui.Page{
			Title:  client.Name,
			Errors: []string{message},
			Data: clientDetailData{
				Client:       client,
				Page:         page,
				PageCount:    pageCount,
				NewGoal:      title,
				NewGoalNotes: notes,
			},
		})
	}

	err = validation.ValidateGoalTitle(title)
	if err != nil {
		rerender(err.Error())
		return
	}

	err = h.goalService.Create(coach.Username, clientID, title, notes)
	if errors.Is(err, repository.ErrDuplicateGoal) {
		rerender("The goal title must be unique")
		return
	}
	if err != nil {
		notFound(w, r, err)
		return
	}

	http.Redirect(w, r, "/"+r.PathValue("client_id"), http.StatusSeeOther)
}

func (h *goalHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, goalID, err := goalPathIDs(r)
	if err != nil {
		notFound(w, r, err)
		return
	}

	client, err := h.clientService.ByID(coach.Username, clientID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	goal, err := h.goalService.ByID(coach.Username, clientID, goalID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	render(w, r, "edit_goal.html", ui.Page{
		Title: "Edit goal",
		Data:  editGoalData{Client: client, Goal: goal},
	})
}

func (h *goalHandler) Update(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, goalID, err := goalPathIDs(r)
	if err != nil {
		notFound(w, r, err)
		return
	}

	title := r.FormValue("goalName")
	notes := r.FormValue("goalNotes")

	rerender := func(message string) {
		client, loadErr := h.clientService.ByID(coach.Username, clientID)
		if loadErr != nil {
			notFound(w, r, loadErr)
			return
		}
		goal, loadErr := h.goalService.ByID(coach.Username, clientID, goalID)
		if loadErr != nil {
			notFound(w, r, loadErr)
			return
		}
		goal.Title = strings.TrimSpace(title)
		goal.Notes = notes
		render(w, r, "edit_goal.html", ui.Page{
			Title:  "Edit goal",
			Errors: []string{message},
			Data:   editGoalData{Client: client, Goal: goal},
		})
	}

	err = validation.ValidateGoalTitle(title)
	if err != nil {
		rerender(err.Error())
		return
	}

	err = h.goalService.Update(coach.Username, clientID, goalID, title, notes)
	if errors.Is(err, repository.ErrDuplicateGoal) {
		rerender("The goal title must be unique")
		return
	}
	if err != nil {
		notFound(w, r, err)
		return
	}

	http.Redirect(w, r, "/"+r.PathValue("client_id"), http.StatusSeeOther)
}

func (h *goalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, goalID, err := goalPathIDs(r)
	if err != nil {
		notFound(w, r, err)
		return
	}

	err = h.goalService.Delete(coach.Username, clientID, goalID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	http.Redirect(w, r, "/"+r.PathValue("client_id"), http.StatusSeeOther)
}

func (h *goalHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, goalID, err := goalPathIDs(r)
	if err != nil {
		notFound(w, r, err)
		return
	}

	goal, err := h.goalService.Toggle(coach.Username, clientID, goalID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	slog.Info("goal toggled", "username", coach.Username, "goal_id", goal.ID, "done", goal.Done)
	http.Redirect(w, r, "/"+r.PathValue("client_id"), http.StatusSeeOther)
}

func goalPathIDs(r *http.Request) (clientID, goalID int64, err error) {
	clientID, err = pathID(r, "client_id")
	if err != nil {
		return 0, 0, err
	}
	goalID, err = pathID(r, "goal_id")
	if err != nil {
		return 0, 0, err
	}
	return clientID, goalID, nil
}
