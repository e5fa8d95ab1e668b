package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"petmanager/internal/common"
	"petmanager/internal/models"
	"petmanager/internal/normalize"
)

// Login authenticates against the backend and returns the session record.
// The token is probed under the known body aliases and, failing that, taken
// from the Authorization response header. A response with no token at all
// is a fatal error for the call.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, error) {
	payload, err := sonic.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return models.User{}, err
	}

	body, header, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   loginPath,
		body:   payload,
	})
	if err != nil {
		return models.User{}, err
	}

	var data map[string]any
	_ = sonic.Unmarshal(body, &data)

	token := normalize.StringField(data, "token", "accessToken", "access_token", "jwt", "bearer")
	refreshToken := normalize.StringField(data, "refreshToken", "refresh_token", "refresh")

	if token == "" {
		if auth := header.Get("Authorization"); auth != "" {
			token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	if token == "" {
		return models.User{}, common.ErrTokenMissing
	}

	return models.User{Username: username, Token: token, RefreshToken: refreshToken}, nil
}
