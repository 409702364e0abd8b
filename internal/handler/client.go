package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pttracker/pttracker/internal/ctxkeys"
	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
	"github.com/pttracker/pttracker/internal/service"
	"github.com/pttracker/pttracker/internal/ui"
	"github.com/pttracker/pttracker/internal/validation"
)

type clientHandler struct {
	clientService *service.ClientService
	goalService   *service.GoalService
}

func NewClientHandler(clientService *service.ClientService, goalService *service.GoalService) *clientHandler {
	return &clientHandler{
		clientService: clientService,
		goalService:   goalService,
	}
}

type homeData struct {
	Clients   []*model.Client
	Page      int
	PageCount int
}

type newClientData struct {
	ClientName string
}

type clientDetailData struct {
	Client       *model.Client
	Page         int
	PageCount    int
	NewGoal      string
	NewGoalNotes string
}

type editClientData struct {
	Client *model.Client
}

func (h *clientHandler) Home(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())
	page := queryPage(r)

	clients, pageCount, err := h.clientService.Page(coach.Username, page)
	if err != nil {
		notFound(w, r, err)
		return
	}

	if page > pageCount {
		notFound(w, r, nil)
		return
	}

	render(w, r, "home.html", ui.Page{
		Title: "Clients",
		Data: homeData{
			Clients:   clients,
			Page:      page,
			PageCount: pageCount,
		},
	})
}

func (h *clientHandler) NewClientPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, "new_client.html", ui.Page{
		Title: "New client",
		Data:  newClientData{},
	})
}

func (h *clientHandler) Create(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())
	name := r.FormValue("clientName")

	rerender := func(message string) {
		render(w, r, "new_client.html", ui.Page{
			Title:  "New client",
			Errors: []string{message},
			Data:   newClientData{ClientName: name},
		})
	}

	err := validation.ValidateClientName(name)
	if err != nil {
		rerender(err.Error())
		return
	}

	err = h.clientService.Create(coach.Username, name)
	if errors.Is(err, repository.ErrDuplicateClient) {
		rerender("The client's name must be unique")
		return
	}
	if err != nil {
		notFound(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *clientHandler) Detail(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, err := pathID(r, "client_id")
	if err != nil {
		notFound(w, r, err)
		return
	}
	page := queryPage(r)

	client, err := h.clientService.ByIDPaginated(coach.Username, clientID, page)
	if err != nil {
		notFound(w, r, err)
		return
	}

	pageCount, err := h.goalService.PageCount(coach.Username, clientID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	// A client with no goals still renders; beyond the last goal page is 404
	if page > pageCount && pageCount != 0 {
		notFound(w, r, nil)
		return
	}

	render(w, r, "client.html", ui.Page{
		Title: client.Name,
		Data: clientDetailData{
			Client:    client,
			Page:      page,
			PageCount: pageCount,
		},
	})
}

func (h *clientHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, err := pathID(r, "client_id")
	if err != nil {
		notFound(w, r, err)
		return
	}

	client, err := h.clientService.ByID(coach.Username, clientID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	render(w, r, "edit_client.html", ui.Page{
		Title: "Edit " + client.Name,
		Data:  editClientData{Client: client},
	})
}

func (h *clientHandler) Update(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, err := pathID(r, "client_id")
	if err != nil {
		notFound(w, r, err)
		return
	}

	name := r.FormValue("clientName")
	notes := r.FormValue("clientNotes")

	rerender := func(message string) {
		client, loadErr := h.clientService.ByID(coach.Username, clientID)
		if loadErr != nil {
			notFound(w, r, loadErr)
			return
		}
		client.Name = strings.TrimSpace(name)
		client.Notes = notes
		render(w, r, "edit_client.html", ui.Page{
			Title:  "Edit " + client.Name,
			Errors: []string{message},
			Data:   editClientData{Client: client},
		})
	}

	err = validation.ValidateClientName(name)
	if err != nil {
		rerender(err.Error())
		return
	}

	err = h.clientService.Update(coach.Username, clientID, name, notes)
	if errors.Is(err, repository.ErrDuplicateClient) {
		rerender("The client name must be unique")
		return
	}
	if err != nil {
		notFound(w, r, err)
		return
	}

	http.Redirect(w, r, "/"+r.PathValue("client_id"), http.StatusSeeOther)
}

func (h *clientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coach := ctxkeys.Coach(r.Context())

	clientID, err := pathID(r, "client_id")
	if err != nil {
		notFound(w, r, err)
		return
	}

	err = h.clientService.Delete(coach.Username, clientID)
	if err != nil {
		notFound(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
