package handler

import "github.com/expensio/expense-tracker/internal/core/ports"

type createCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=20"`
	Description string `json:"description" validate:"required,min=2,max=60"`
}

type listCategoriesRequest struct {
	Name        string `query:"name"        validate:"omitempty,max=20"`
	Description string `query:"description" validate:"omitempty,max=20"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	Page        int64  `query:"page"        validate:"omitempty,min=1"`
	Limit       int64  `query:"limit"       validate:"omitempty,min=1"`
}

func (req listCategoriesRequest) toFilter() (ports.CategoryFilter, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return ports.CategoryFilter{}, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return ports.CategoryFilter{}, err
	}

	return ports.CategoryFilter{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Page:        req.Page,
		Limit:       req.Limit,
	}, nil
}

type updateCategoryRequest struct {
	ID          string  `param:"id"         validate:"required,mongodb"`
	Name        *string `json:"name"        validate:"omitempty,min=2,max=20"`
	Description *string `json:"description" validate:"omitempty,min=2,max=60"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type listCategoriesResponse struct {
	Data  []categoryResponse `json:"data"`
	Total int64              `json:"total"`
}

func toListCategoriesResponse(page *ports.CategoryPage) listCategoriesResponse {
	data := make([]categoryResponse, len(page.Data))
	for i, cat := range page.Data {
		data[i] = categoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		}
	}
	return listCategoriesResponse{Data: data, Total: page.Total}
}
