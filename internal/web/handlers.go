package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskwell/internal/db"
	"taskwell/internal/models"
	"taskwell/internal/parser"
	"taskwell/internal/query"
)

// listingData is the contract with the listing template.
type listingData struct {
	Tasks           []models.Task
	CurrentCategory string
	SearchQuery     string
	Page            int
	TotalPages      int
	FilterStatus    string
	FilterPriority  string
	FilterDue       string
	SortBy          string
	PrevURL         string
	NextURL         string
	Error           string
}

func handleIndex(c *gin.Context) {
	renderListing(c, http.StatusOK, "")
}

func handleAdd(c *gin.Context) {
	req, err := formTaskRequest(c)
	if err != nil {
		renderListing(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.CreateTask(req); err != nil {
		if errors.Is(err, db.ErrTitleRequired) {
			renderListing(c, http.StatusBadRequest, "Title is required")
			return
		}
		storageError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func handleEdit(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	req, err := formTaskRequest(c)
	if err != nil {
		renderListing(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.UpdateTask(id, req); err != nil {
		switch {
		case errors.Is(err, db.ErrTitleRequired):
			renderListing(c, http.StatusBadRequest, "Title is required")
			return
		case errors.Is(err, db.ErrTaskNotFound):
			// Editing a vanished task is a no-op.
		default:
			storageError(c, err)
			return
		}
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func handleToggle(c *gin.Context) {
	if id, ok := taskID(c); ok {
		if _, err := db.ToggleTask(id); err != nil && !errors.Is(err, db.ErrTaskNotFound) {
			storageError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/")
}

func handleDelete(c *gin.Context) {
	if id, ok := taskID(c); ok {
		if err := db.DeleteTask(id); err != nil && !errors.Is(err, db.ErrTaskNotFound) {
			storageError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/")
}

// renderListing runs the listing query for the current request
// parameters and renders the page. Validation failures reuse it with a
// 400 status and an error banner instead of silently redirecting.
func renderListing(c *gin.Context, status int, errMsg string) {
	opts := listingOptions(c)
	plan := query.Compile(opts, time.Now())

	tasks, total, err := db.ListTasks(plan)
	if err != nil {
		storageError(c, err)
		return
	}

	totalPages := query.TotalPages(total)
	data := listingData{
		Tasks:           tasks,
		CurrentCategory: opts.Category,
		SearchQuery:     opts.Search,
		Page:            plan.Page,
		TotalPages:      totalPages,
		FilterStatus:    opts.Status,
		FilterPriority:  opts.Priority,
		FilterDue:       opts.Due,
		SortBy:          opts.Sort,
		Error:           errMsg,
	}
	if plan.Page > 1 {
		data.PrevURL = pageURL(opts, plan.Page-1)
	}
	if plan.Page < totalPages {
		data.NextURL = pageURL(opts, plan.Page+1)
	}

	c.HTML(status, "index.html", data)
}

// listingOptions parses the listing query parameters with their
// documented defaults. A malformed page number counts as page 1.
func listingOptions(c *gin.Context) query.Options {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return query.Options{
		Category: c.DefaultQuery("category", query.All),
		Status:   c.DefaultQuery("status", query.All),
		Priority: c.DefaultQuery("priority", query.All),
		Due:      c.DefaultQuery("due", query.All),
		Search:   strings.TrimSpace(c.Query("q")),
		Sort:     c.DefaultQuery("sort", query.SortDefault),
		Page:     page,
	}
}

// formTaskRequest reads the add/edit form fields. Only the due date can
// fail here; presence checks live in the store.
func formTaskRequest(c *gin.Context) (db.TaskRequest, error) {
	due, err := parser.ParseDueDate(c.PostForm("due_date"))
	if err != nil {
		return db.TaskRequest{}, err
	}
	return db.TaskRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
		Category:    c.PostForm("category"),
		DueDate:     due,
	}, nil
}

func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func pageURL(opts query.Options, page int) string {
	v := url.Values{}
	if opts.Category != query.All {
		v.Set("category", opts.Category)
	}
	if opts.Status != query.All {
		v.Set("status", opts.Status)
	}
	if opts.Priority != query.All {
		v.Set("priority", opts.Priority)
	}
	if opts.Due != query.All {
		v.Set("due", opts.Due)
	}
	if opts.Search != "" {
		v.Set("q", opts.Search)
	}
	if opts.Sort != query.SortDefault {
		v.Set("sort", opts.Sort)
	}
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}

func storageError(c *gin.Context, err error) {
	c.String(http.StatusInternalServerError, "storage error: %v", err)
}
