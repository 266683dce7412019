package graylog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// permissionsUpdate is the PUT body for the permissions endpoint.
type permissionsUpdate struct {
	Permissions []string `json:"permissions"`
}

// Users lists all user accounts. The boolean reports whether the server
// answered with a user page.
func (c *Client) Users(ctx context.Context) ([]User, bool, error) {
	res, ok, err := c.Get(ctx, "users")
	if err != nil || !ok {
		return nil, false, err
	}

	var users []User
	if err := json.Unmarshal([]byte(res.Get("users").Raw), &users); err != nil {
		return nil, false, fmt.Errorf("decode users field: %w", err)
	}
	return users, true, nil
}

// User fetches a single account by username. The boolean reports whether the
// server returned the user.
func (c *Client) User(ctx context.Context, username string) (User, bool, error) {
	res, ok, err := c.Get(ctx, "users/"+url.PathEscape(username))
	if err != nil || !ok {
		return User{}, false, err
	}

	var user User
	if err := json.Unmarshal([]byte(res.Raw), &user); err != nil {
		return User{}, false, fmt.Errorf("decode user %s: %w", username, err)
	}
	return user, true, nil
}

// DeleteUser removes the user with the given ID. Only a 400 response is
// reported as a rejection; every other status, error codes included, counts
// as accepted. That mapping matches the server CLI's historical contract;
// callers needing a stricter predicate should use Delete and inspect the
// status code themselves.
func (c *Client) DeleteUser(ctx context.Context, userID string) (bool, error) {
	status, err := c.Delete(ctx, "users/id/"+url.PathEscape(userID))
	if err != nil {
		return false, err
	}
	return status != http.StatusBadRequest, nil
}

// SetUserPermissions replaces the user's permission set. The 400-only
// rejection mapping of DeleteUser applies here as well.
func (c *Client) SetUserPermissions(ctx context.Context, username string, permissions []string) (bool, error) {
	op := "users/" + url.PathEscape(username) + "/permissions"
	status, err := c.Put(ctx, op, permissionsUpdate{Permissions: permissions})
	if err != nil {
		return false, err
	}
	return status != http.StatusBadRequest, nil
}
