package queries

import (
	"encoding/json"
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var ErrGetConfigQueryIsNotConstructed = errors.New(
	"GetConfigQuery must be created via NewGetConfigQuery constructor",
)

// Frontend surface namespaces. Each one maps to a typed blob below.
const (
	ConfigHomePage      = "home_page"
	ConfigProfilePage   = "profile_page"
	ConfigCollectorHome = "collector_home"
	ConfigAboutPage     = "about_page"
)

// GetConfigQuery retrieves the dynamic configuration blob for one frontend
// surface. Stored overrides replace the compiled-in defaults wholesale.
type GetConfigQuery struct {
	namespace string

	guard kernel.ConstructorGuard
}

// NewGetConfigQuery creates a config query for a namespace.
func NewGetConfigQuery(namespace string) (GetConfigQuery, error) {
	if namespace == "" {
		return GetConfigQuery{}, errs.NewValueIsRequiredError("namespace")
	}
	return GetConfigQuery{
		namespace: namespace,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetConfigQueryIsNotConstructed)
}

// Namespace returns the requested surface.
func (q GetConfigQuery) Namespace() string {
	return q.namespace
}

// ConfigNamespaces lists every known surface, in the order the combined
// endpoint renders them.
func ConfigNamespaces() []string {
	return []string{ConfigHomePage, ConfigProfilePage, ConfigCollectorHome, ConfigAboutPage}
}

// Banner is one rotating image on the mini-app home screen.
type Banner struct {
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
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

// HomePageConfig drives the mini-app home screen.
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

// ProfilePageConfig drives the mini-app profile screen.
type ProfilePageConfig struct {
	MenuItems    []MenuItem `json:"menu_items"`
	ServicePhone string     `json:"service_phone,omitempty"`
}

// Tab is one switchable list on the collector home screen.
type Tab struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CollectorHomeConfig drives the collector app home screen.
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

// GetConfigQueryResponse is a tagged variant: Namespace names the surface
// and exactly one of the typed fields is set.
type GetConfigQueryResponse struct {
	Namespace     string
	HomePage      *HomePageConfig
	ProfilePage   *ProfilePageConfig
	CollectorHome *CollectorHomeConfig
	AboutPage     *AboutPageConfig
}

// Value returns the populated branch for rendering.
func (r GetConfigQueryResponse) Value() any {
	switch {
	case r.HomePage != nil:
		return r.HomePage
	case r.ProfilePage != nil:
		return r.ProfilePage
	case r.CollectorHome != nil:
		return r.CollectorHome
	case r.AboutPage != nil:
		return r.AboutPage
	default:
		return nil
	}
}

// DecodeConfig turns a stored blob into the namespace's typed form. Keys
// the struct does not know are ignored, so older builds tolerate newer
// blobs. An empty blob yields the compiled-in default; an unknown
// namespace is not found.
func DecodeConfig(namespace string, raw []byte) (GetConfigQueryResponse, error) {
	response := GetConfigQueryResponse{Namespace: namespace}

	switch namespace {
	case ConfigHomePage:
		cfg := defaultHomePageConfig()
		if err := decodeBlob(raw, &cfg); err != nil {
			return GetConfigQueryResponse{}, err
		}
		response.HomePage = &cfg
	case ConfigProfilePage:
		cfg := defaultProfilePageConfig()
		if err := decodeBlob(raw, &cfg); err != nil {
			return GetConfigQueryResponse{}, err
		}
		response.ProfilePage = &cfg
	case ConfigCollectorHome:
		cfg := defaultCollectorHomeConfig()
		if err := decodeBlob(raw, &cfg); err != nil {
			return GetConfigQueryResponse{}, err
		}
		response.CollectorHome = &cfg
	case ConfigAboutPage:
		cfg := defaultAboutPageConfig()
		if err := decodeBlob(raw, &cfg); err != nil {
			return GetConfigQueryResponse{}, err
		}
		response.AboutPage = &cfg
	default:
		return GetConfigQueryResponse{}, errs.NewObjectNotFoundError("config", namespace)
	}

	return response, nil
}

// decodeBlob replaces the default with the stored blob when one exists.
func decodeBlob[T any](raw []byte, cfg *T) error {
	if len(raw) == 0 {
		return nil
	}
	var stored T
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}
	*cfg = stored
	return nil
}

func defaultHomePageConfig() HomePageConfig {
	return HomePageConfig{
		Banners: []Banner{},
		StatsLabels: []StatsLabel{
			{Label: "Carbon offset (kg)", Key: "carbon_offset"},
			{Label: "Pickups", Key: "recycle_count"},
			{Label: "Earnings", Key: "total_earnings"},
		},
		QuickActions: []QuickAction{
			{Name: "Scan to recycle", Icon: "scan", Path: "scan"},
			{Name: "Doorstep pickup", Icon: "home", Path: "home"},
			{Name: "Drop-off points", Icon: "location", Path: "location"},
			{Name: "My points", Icon: "money-circle", Path: "points"},
		},
	}
}

func defaultProfilePageConfig() ProfilePageConfig {
	return ProfilePageConfig{
		MenuItems: []MenuItem{
			{Title: "Saved addresses", Icon: "location", Path: "/pages/address/address", Color: "#07c160"},
			{Title: "My points", Icon: "money-circle", Path: "/pages/points/points", Color: "#fa8c16"},
			{Title: "Contact support", Icon: "chat", Path: "call", Color: "#07c160"},
			{Title: "About us", Icon: "info-circle", Path: "/pages/about/about", Color: "#999999"},
		},
	}
}

func defaultCollectorHomeConfig() CollectorHomeConfig {
	return CollectorHomeConfig{
		Tabs: []Tab{
			{ID: "new", Name: "Open pool"},
			{ID: "my", Name: "In progress"},
		},
		StatsLabels: []StatsLabel{
			{Label: "Orders this month", Key: "month_count"},
			{Label: "Service rating", Key: "rating"},
			{Label: "Wallet balance", Key: "balance"},
		},
	}
}

func defaultAboutPageConfig() AboutPageConfig {
	return AboutPageConfig{
		Version:   "1.0.2",
		AppName:   "EcoLoop",
		Copyright: "Copyright © 2026 EcoLoop",
		Links: []AboutLink{
			{Title: "Features", Path: "/pages/about/intro"},
			{Title: "Feedback", Path: "/pages/about/feedback"},
			{Title: "Check for updates", Path: "update"},
			{Title: "Privacy policy", Path: "/pages/about/privacy"},
		},
	}
}
