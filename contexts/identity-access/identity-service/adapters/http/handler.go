package httpadapter

import (
	"context"
	"log/slog"

	"coursebay/contexts/identity-access/identity-service/application"
	"coursebay/contexts/identity-access/identity-service/domain/entities"
	httptransport "coursebay/contexts/identity-access/identity-service/transport/http"
)

type Handler struct {
	Guard    application.Guard
	Login    application.LoginUseCase
	Register application.RegisterUseCase
	Promote  application.PromoteRoleUseCase
	Users    application.ListUsersUseCase
	Logger   *slog.Logger
}

// RegisterHandler godoc
// @Summary Register a learner account
// @Description Creates a learner-tier directory record.
// @Tags identity
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterRequest true "Registration payload"
// @Success 201 {object} httptransport.RegisterResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /auth/register [post]
func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.RegisterResponse, error) {
	identity, err := h.Register.Execute(ctx, application.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{User: mapUser(identity)}, nil
}

// LoginHandler godoc
// @Summary Log in
// @Description Checks credentials and issues a signed session token.
// @Tags identity
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Credentials"
// @Success 200 {object} httptransport.LoginResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /auth/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Login.Execute(ctx, application.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Token: result.Token,
		User:  mapUser(result.Identity),
	}, nil
}

// MeHandler godoc
// @Summary Current identity
// @Description Returns the directory record behind the verified session.
// @Tags identity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.MeResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /auth/me [get]
func (h Handler) MeHandler(_ context.Context, identity entities.Identity) (httptransport.MeResponse, error) {
	return httptransport.MeResponse{User: mapUser(identity)}, nil
}

// ListUsersHandler godoc
// @Summary List identities
// @Description Admin surface: lists all directory records.
// @Tags identity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListUsersResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /admin/users [get]
func (h Handler) ListUsersHandler(ctx context.Context) (httptransport.ListUsersResponse, error) {
	items, err := h.Users.Execute(ctx)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}
	out := make([]httptransport.UserDTO, 0, len(items))
	for _, identity := range items {
		out = append(out, mapUser(identity))
	}
	return httptransport.ListUsersResponse{Items: out}, nil
}

// UpdateRoleHandler godoc
// @Summary Update a user's role
// @Description Admin surface: promotes or demotes a directory record.
// @Tags identity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id"
// @Param request body httptransport.UpdateRoleRequest true "Target role"
// @Success 200 {object} httptransport.UpdateRoleResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /admin/users/{user_id}/role [post]
func (h Handler) UpdateRoleHandler(ctx context.Context, userID string, req httptransport.UpdateRoleRequest) (httptransport.UpdateRoleResponse, error) {
	identity, err := h.Promote.Execute(ctx, application.PromoteRoleCommand{
		UserID: userID,
		Role:   entities.Role(req.Role),
	})
	if err != nil {
		return httptransport.UpdateRoleResponse{}, err
	}
	return httptransport.UpdateRoleResponse{User: mapUser(identity)}, nil
}

func mapUser(identity entities.Identity) httptransport.UserDTO {
	return httptransport.UserDTO{
		UserID: identity.UserID,
		Email:  identity.Email,
		Name:   identity.Name,
		Role:   string(identity.Role),
	}
}
