package api

import (
	"context"
	"net/http"
	"net/url"

	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// Resource is a REST collection endpoint: list, create, partial update and
// delete by id.
type Resource[T dto.Record, C, U any] struct {
	c    *Client
	path string
}

func (r Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r Resource[T, C, U]) Create(ctx context.Context, input C) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, nil, input, &out)
	return out, err
}

func (r Resource[T, C, U]) Update(ctx context.Context, id string, patch U) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPatch, r.path+"/"+url.PathEscape(id), nil, patch, &out)
	return out, err
}

func (r Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil)
}

// Donors is the donor collection.
func (c *Client) Donors() Resource[dto.Donor, dto.DonorInput, dto.DonorPatch] {
	return Resource[dto.Donor, dto.DonorInput, dto.DonorPatch]{c: c, path: "/donors"}
}

// Users is the user collection (admin only).
func (c *Client) Users() Resource[dto.User, dto.UserInput, dto.UserPatch] {
	return Resource[dto.User, dto.UserInput, dto.UserPatch]{c: c, path: "/users"}
}

// Settings is the settings collection.
func (c *Client) Settings() Resource[dto.Setting, dto.SettingInput, dto.SettingPatch] {
	return Resource[dto.Setting, dto.SettingInput, dto.SettingPatch]{c: c, path: "/settings"}
}
