package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

const (
	pathLogin            = "/customer/login/pwd.e"
	pathIslandBackpack   = "/nft/enMemberIsland/backpackPage"
	pathIslandCollect    = "/nft/enMemberIsland/collect"
	pathIslandSupplement = "/nft/enMemberIsland/supplement"
	pathIslandStart      = "/nft/enMemberIsland/start"
	pathSearchPre        = "/game/gameMemberShipSlot/searchPre"
	pathSearch           = "/game/gameMemberShipSlot/search"
)

// Login exchanges phone and password for a session token
func (c *Client) Login(ctx context.Context, phone, password string) (*ports.LoginResult, error) {
	var data loginData
	if err := c.request(ctx, http.MethodPost, pathLogin, nil, loginRequest{Phone: phone, Password: password}, "", &data); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if data.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	return &ports.LoginResult{
		Token: data.Token,
		User:  data.UserDetail,
	}, nil
}

// ListIslands fetches the player's island backpack
func (c *Client) ListIslands(ctx context.Context, token string) ([]*island.Island, error) {
	var page pageData[islandDTO]
	if err := c.request(ctx, http.MethodGet, pathIslandBackpack, nil, nil, token, &page); err != nil {
		return nil, fmt.Errorf("failed to list islands: %w", err)
	}

	islands := make([]*island.Island, 0, len(page.Records))
	for _, record := range page.Records {
		islands = append(islands, islandFromDTO(record))
	}
	return islands, nil
}

// CollectIsland collects the pending output of one island
func (c *Client) CollectIsland(ctx context.Context, id int64, token string) (bool, error) {
	ok, err := c.requestFlag(ctx, http.MethodPost, pathIslandCollect, nil, collectRequest{ID: id}, token)
	if err != nil {
		return false, fmt.Errorf("failed to collect island %d: %w", id, err)
	}
	return ok, nil
}

// SupplementIsland spends amount currency on an island's resource
func (c *Client) SupplementIsland(ctx context.Context, id int64, amount int, token string) (bool, error) {
	ok, err := c.requestFlag(ctx, http.MethodPost, pathIslandSupplement, nil, supplementRequest{ID: id, Consume: amount}, token)
	if err != nil {
		return false, fmt.Errorf("failed to supplement island %d: %w", id, err)
	}
	return ok, nil
}

// StartIsland starts (or stops) production. Parameters travel in the query string.
func (c *Client) StartIsland(ctx context.Context, id int64, start bool, token string) (bool, error) {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(id, 10))
	query.Set("start", strconv.FormatBool(start))

	ok, err := c.requestFlag(ctx, http.MethodPost, pathIslandStart, query, nil, token)
	if err != nil {
		return false, fmt.Errorf("failed to start island %d: %w", id, err)
	}
	return ok, nil
}

// GetSearchProfile fetches the search quota, output and workers
func (c *Client) GetSearchProfile(ctx context.Context, token string) (*search.Profile, error) {
	var dto searchPreDTO
	if err := c.request(ctx, http.MethodGet, pathSearchPre, nil, nil, token, &dto); err != nil {
		return nil, fmt.Errorf("failed to get search profile: %w", err)
	}
	return profileFromDTO(dto), nil
}

// Search spends one free search
func (c *Client) Search(ctx context.Context, token string) (bool, error) {
	ok, err := c.requestFlag(ctx, http.MethodPost, pathSearch, nil, searchRequest{FreeSearch: true}, token)
	if err != nil {
		return false, fmt.Errorf("failed to search: %w", err)
	}
	return ok, nil
}

var _ ports.GameClient = (*Client)(nil)
