package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/soko/internal/api"
	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/config"
	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/session"
	"github.com/Veraticus/soko/internal/storage"
)

// app bundles everything a command needs to talk to the marketplace.
type app struct {
	cfg      *config.Config
	store    *storage.SQLiteStorage
	client   *api.Client
	session  *session.Session
	resolver *geo.Resolver
}

// newApp loads the configuration, opens local storage and restores the
// stored session, if any.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	tokens := session.NewTokenStore(store)
	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(tokens))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	slog.Debug("Client ready", "api", client.BaseURL(), "storage", store.Path())

	sess := session.New(client.Auth, tokens)
	if err := sess.Restore(ctx); err != nil {
		slog.Warn("Failed to restore session", "error", err)
	}

	return &app{
		cfg:      cfg,
		store:    store,
		client:   client,
		session:  sess,
		resolver: geo.NewResolver(cfg.Location.Locator(), store),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// pageOptions are the browse options shared by every listing page.
func (a *app) pageOptions() []browse.Option {
	return []browse.Option{
		browse.WithRadius(a.cfg.Search.RadiusKm),
		browse.WithExpandedRadius(a.cfg.Search.ExpandedRadiusKm),
		browse.WithAssistant(a.client.AI),
	}
}

const loginFirst = "You need to log in first. Run 'soko login'."

// requireLogin fails unless a user is signed in.
func (a *app) requireLogin() (*model.User, error) {
	user := a.session.User()
	if user == nil {
		return nil, common.NewUserError(loginFirst, common.ErrNotAuthenticated)
	}
	return user, nil
}

// explainError turns a credential rejection from the API into a message the
// user can act on. Errors that already carry a user message pass through.
func explainError(err error) error {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return err
	}
	apiErr, ok := api.AsAPIError(err)
	if !ok || !apiErr.Unauthorized() {
		return err
	}
	if apiErr.StatusCode == http.StatusForbidden {
		return common.NewUserError("Your account is not allowed to do that.", fmt.Errorf("%w: %w", common.ErrNotAuthenticated, err))
	}
	return common.NewUserError(loginFirst, fmt.Errorf("%w: %w", common.ErrNotAuthenticated, err))
}

// initStorage opens the local database and brings its schema up to date.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	if dbPath == "" {
		dbPath = config.ExpandPath("$HOME/.local/share/soko/soko.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// logToFile redirects logging to the configured log file so it does not
// draw over a full-screen program. The returned closer ends the redirect.
func logToFile(cfg *config.Config) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := common.SetupLogger(f, cfg.Logging.Level, cfg.Logging.Format); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// parseListingKind accepts the singular or plural name of a browsable kind.
func parseListingKind(arg string) (model.Kind, error) {
	kind, ok := model.ParseKind(strings.ToLower(strings.TrimSpace(arg)))
	if !ok || kind == model.KindCategory {
		return "", common.NewUserError(
			fmt.Sprintf("Unknown kind %q. Use services, businesses or products.", arg),
			common.ErrInvalidInput)
	}
	return kind, nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("Invalid id %q", arg), common.ErrInvalidInput)
	}
	return id, nil
}

// parseCoordinate reads a "lat,lng" pair.
func parseCoordinate(s string) (model.Coordinate, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return model.Coordinate{}, fmt.Errorf("%w: location %q must be lat,lng", common.ErrInvalidInput, s)
	}
	latV, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: latitude %q: %w", common.ErrInvalidInput, lat, err)
	}
	lngV, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: longitude %q: %w", common.ErrInvalidInput, lng, err)
	}
	c := model.Coordinate{Lat: latV, Lng: lngV}
	if err := checkCoordinate(c); err != nil {
		return model.Coordinate{}, err
	}
	return c, nil
}

func checkCoordinate(c model.Coordinate) error {
	// NaN fails every comparison, so only in-range values pass.
	if !(c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180) {
		return fmt.Errorf("%w: location %s is out of range", common.ErrInvalidInput, c)
	}
	return nil
}

// addLocationFlags registers --near and --lat/--lng.
func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().String("near", "", "search around this position instead of your location (lat,lng)")
	cmd.Flags().Float64("lat", 0, "latitude to use instead of your location")
	cmd.Flags().Float64("lng", 0, "longitude to use instead of your location")
}

// locationOverride returns the position given on the command line, if any.
func locationOverride(cmd *cobra.Command) (*model.Coordinate, error) {
	flags := cmd.Flags()
	if near, _ := flags.GetString("near"); near != "" {
		c, err := parseCoordinate(near)
		if err != nil {
			return nil, err
		}
		return &c, nil
	}
	if !flags.Changed("lat") && !flags.Changed("lng") {
		return nil, nil
	}
	if !flags.Changed("lat") || !flags.Changed("lng") {
		return nil, fmt.Errorf("%w: --lat and --lng must be given together", common.ErrInvalidInput)
	}
	lat, _ := flags.GetFloat64("lat")
	lng, _ := flags.GetFloat64("lng")
	c := model.Coordinate{Lat: lat, Lng: lng}
	if err := checkCoordinate(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// resolverFor returns the resolver a command should use: a static one for a
// command line override, which is not remembered, otherwise the app's.
func (a *app) resolverFor(cmd *cobra.Command) (*geo.Resolver, error) {
	override, err := locationOverride(cmd)
	if err != nil {
		return nil, err
	}
	if override == nil {
		return a.resolver, nil
	}
	return geo.NewResolver(geo.StaticLocator{Coordinate: *override}, nil), nil
}
