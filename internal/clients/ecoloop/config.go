package ecoloop

import (
	"context"
	"net/http"
)

// Frontend configuration blobs. Each surface decodes into its own struct;
// keys a build does not know are ignored, so an older client tolerates a
// newer backend blob.

// Banner is one rotating image on the home screen.
type Banner struct {
	Image string `json:"image"`
	Link  string `json:"link"`
}

// StatsLabel binds a display label to a stats field key.
type StatsLabel struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// QuickAction is one entry point tile on the home screen.
type QuickAction struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Path string `json:"path"`
}

// HomePageConfig drives the home screen.
type HomePageConfig struct {
	Banners      []Banner      `json:"banners"`
	StatsLabels  []StatsLabel  `json:"stats_labels"`
	QuickActions []QuickAction `json:"quick_actions"`
}

// MenuItem is one row in the profile screen menu.
type MenuItem struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
	Color string `json:"color"`
}

// ProfilePageConfig drives the profile screen.
type ProfilePageConfig struct {
	MenuItems    []MenuItem `json:"menu_items"`
	ServicePhone string     `json:"service_phone"`
}

// Tab is one switchable list on the collector home screen.
type Tab struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CollectorHomeConfig drives the collector home screen.
type CollectorHomeConfig struct {
	Tabs        []Tab        `json:"tabs"`
	StatsLabels []StatsLabel `json:"stats_labels"`
}

// AboutLink is one row on the about screen.
type AboutLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// AboutPageConfig drives the about screen.
type AboutPageConfig struct {
	Version   string      `json:"version"`
	AppName   string      `json:"app_name"`
	Copyright string      `json:"copyright"`
	Links     []AboutLink `json:"links"`
}

// HomePageConfig fetches the home screen configuration. No session needed.
func (c *Client) HomePageConfig(ctx context.Context) (HomePageConfig, error) {
	var out HomePageConfig
	err := c.doPublic(ctx, http.MethodGet, "/api/v1/config/home_page", nil, &out)
	return out, err
}

// ProfilePageConfig fetches the profile screen configuration.
func (c *Client) ProfilePageConfig(ctx context.Context) (ProfilePageConfig, error) {
	var out ProfilePageConfig
	err := c.doPublic(ctx, http.MethodGet, "/api/v1/config/profile_page", nil, &out)
	return out, err
}

// CollectorHomeConfig fetches the collector home screen configuration.
func (c *Client) CollectorHomeConfig(ctx context.Context) (CollectorHomeConfig, error) {
	var out CollectorHomeConfig
	err := c.doPublic(ctx, http.MethodGet, "/api/v1/config/collector_home", nil, &out)
	return out, err
}

// AboutPageConfig fetches the about screen configuration.
func (c *Client) AboutPageConfig(ctx context.Context) (AboutPageConfig, error) {
	var out AboutPageConfig
	err := c.doPublic(ctx, http.MethodGet, "/api/v1/config/about_page", nil, &out)
	return out, err
}
