package api

import (
	"context"
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// GetUserProfile gets a user's public profile
func GetUserProfile(username string) (*User, error) {
	logger.Debug("Fetching user profile", "username", username)

	resp, err := client.GetClient().
		R().
		Get("/api/v1/users/" + username + "/profile")

	var profileResp ProfileResponse
	if err := decode(resp, err, &profileResp); err != nil {
		return nil, err
	}

	return &profileResp.User, nil
}

// Follow follows a user
func Follow(ctx context.Context, username string) (*MutationResponse, error) {
	logger.Debug("Following user", "username", username)
	return mutate(ctx, "POST", "/api/v1/users/"+username+"/follow", nil)
}

// Unfollow unfollows a user
func Unfollow(ctx context.Context, username string) (*MutationResponse, error) {
	logger.Debug("Unfollowing user", "username", username)
	return mutate(ctx, "DELETE", "/api/v1/users/"+username+"/follow", nil)
}

// GetFollowers gets user's followers
func GetFollowers(username string, page, pageSize int) ([]User, int, error) {
	logger.Debug("Fetching followers", "username", username, "page", page)
	return listRelations(username, "followers", page, pageSize)
}

// GetFollowing gets users that someone is following
func GetFollowing(username string, page, pageSize int) ([]User, int, error) {
	logger.Debug("Fetching following", "username", username, "page", page)
	return listRelations(username, "following", page, pageSize)
}

// listRelations reads a follow list; the backend names the array after the
// relation ("followers" or "following")
func listRelations(username, relation string, page, pageSize int) ([]User, int, error) {
	resp, err := client.GetClient().
		R().
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("page_size", strconv.Itoa(pageSize)).
		Get("/api/v1/users/" + username + "/" + relation)

	if err := CheckResponse(resp, err); err != nil {
		return nil, 0, err
	}

	body := resp.Body()
	var users []User
	json.Get(body, relation).ToVal(&users)

	return users, json.Get(body, "total_count").ToInt(), nil
}
