package handler

import "github.com/expensio/expense-tracker/internal/core/ports"

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	LastName string `json:"lastName" validate:"required"`
	Username string `json:"username" validate:"required,min=4,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=10,max=20"`
}

type listUsersRequest struct {
	FullName  string `query:"fullName"  validate:"omitempty,max=20"`
	Username  string `query:"username"  validate:"omitempty,max=20"`
	Email     string `query:"email"     validate:"omitempty,max=20"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Skip      int64  `query:"skip"      validate:"omitempty,min=0"`
	Limit     int64  `query:"limit"     validate:"omitempty,min=1"`
}

// toFilter converts the bound query params into the directory filter.
func (req listUsersRequest) toFilter() (ports.UserFilter, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return ports.UserFilter{}, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return ports.UserFilter{}, err
	}

	return ports.UserFilter{
		FullName:  req.FullName,
		Username:  req.Username,
		Email:     req.Email,
		StartDate: start,
		EndDate:   end,
		Skip:      req.Skip,
		Limit:     req.Limit,
	}, nil
}

type updateUserRequest struct {
	ID       string  `param:"id"      validate:"required,mongodb"`
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	LastName *string `json:"lastName" validate:"omitempty,min=1"`
	Username *string `json:"username" validate:"omitempty,min=4,max=20"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=10,max=20"`
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type listUsersResponse struct {
	Data  []userResponse `json:"data"`
	Total int64          `json:"total"`
}

func toListUsersResponse(page *ports.UserPage) listUsersResponse {
	data := make([]userResponse, len(page.Data))
	for i, u := range page.Data {
		data[i] = userResponse{
			ID:       u.ID,
			Name:     u.Name,
			LastName: u.LastName,
			Username: u.Username,
			Email:    u.Email,
		}
	}
	return listUsersResponse{Data: data, Total: page.Total}
}
