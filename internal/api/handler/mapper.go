package handler

import (
	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

// Explicit, hand-written conversions between domain entities and transport
// DTOs. Keeping these in one place decouples the JSON contract from internal
// type changes.

const birthDateLayout = "2006-01-02"

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		JobTitle:     u.JobTitle,
		Location:     u.Location,
		ProfilePhoto: u.PhotoPath,
		Roles:        u.Roles,
		CreatedBy:    u.CreatedBy,
		UpdatedBy:    u.UpdatedBy,
	}
	if u.BirthDate != nil {
		resp.BirthDate = u.BirthDate.Format(birthDateLayout)
	}
	return resp
}

func toPagedUsersResponse(page *ports.UserPage) pagedUsersResponse {
	data := make([]userResponse, 0, len(page.Data))
	for _, u := range page.Data {
		data = append(data, toUserResponse(u))
	}
	return pagedUsersResponse{
		Data:          data,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedBy:   t.CreatedBy,
		UpdatedBy:   t.UpdatedBy,
	}
}

func toPagedTodosResponse(page *ports.TodoPage) pagedTodosResponse {
	data := make([]todoResponse, 0, len(page.Data))
	for _, t := range page.Data {
		data = append(data, toTodoResponse(t))
	}
	return pagedTodosResponse{
		Data:          data,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
