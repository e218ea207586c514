package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/soko/internal/api"
	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/form"
	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
)

var westlands = model.Coordinate{Lat: -1.2676, Lng: 36.8108}

func TestRootCommands(t *testing.T) {
	want := []string{
		"browse", "list", "show", "create", "update", "delete", "categories",
		"login", "logout", "register", "profile", "ai", "admin", "version",
	}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "%s command should exist", name)
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "api-url"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "--%s should exist", name)
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want []string
	}{
		{aiCmd(), []string{"enhance", "tags", "suggest"}},
		{adminCmd(), []string{"pending", "verify"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			var got []string
			for _, sub := range tt.cmd.Commands() {
				got = append(got, sub.Name())
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestListCmdFlags(t *testing.T) {
	cmd := listCmd()
	for _, name := range []string{"search", "category", "price", "expand", "near", "lat", "lng"} {
		assert.NotNil(t, cmd.Flag(name), "--%s should exist", name)
	}
}

func TestParseListingKind(t *testing.T) {
	tests := []struct {
		arg     string
		want    model.Kind
		wantErr bool
	}{
		{"services", model.KindService, false},
		{"service", model.KindService, false},
		{"Businesses", model.KindBusiness, false},
		{" product ", model.KindProduct, false},
		{"categories", "", true},
		{"shoes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseListingKind(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				assert.Contains(t, common.UserMessage(err, ""), "Use services, businesses or products")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad)
		assert.ErrorIs(t, err, common.ErrInvalidInput, bad)
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := parseCoordinate("-1.2676, 36.8108")
	require.NoError(t, err)
	assert.Equal(t, westlands, c)

	for _, bad := range []string{"", "-1.2", "a,b", "91,0", "0,181", "NaN,36.8", "-1.2,Inf"} {
		_, err := parseCoordinate(bad)
		assert.ErrorIs(t, err, common.ErrInvalidInput, bad)
	}
}

func newLocationCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addLocationFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLocationOverride(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		got, err := locationOverride(newLocationCmd(t))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("near", func(t *testing.T) {
		got, err := locationOverride(newLocationCmd(t, "--near", "-1.2676,36.8108"))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, westlands, *got)
	})

	t.Run("lat and lng", func(t *testing.T) {
		got, err := locationOverride(newLocationCmd(t, "--lat", "-1.2676", "--lng", "36.8108"))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, westlands, *got)
	})

	t.Run("lat alone", func(t *testing.T) {
		_, err := locationOverride(newLocationCmd(t, "--lat", "-1.2676"))
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestListOptionsFromFlags(t *testing.T) {
	cmd := listCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--search", "arduino", "--price", "500-2000", "--expand"}))

	opts, err := listOptionsFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, listOptions{search: "arduino", price: "500-2000", expand: true}, opts)

	cmd = listCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--price", "cheap"}))
	_, err = listOptionsFromFlags(cmd)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	cmd = listCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--price", "NaN-2000"}))
	_, err = listOptionsFromFlags(cmd)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestProfileTabs(t *testing.T) {
	tabs, err := profileTabs("all")
	require.NoError(t, err)
	assert.Equal(t, []string{tabBusinesses, tabProducts, tabServices}, tabs)

	tabs, err = profileTabs("Products")
	require.NoError(t, err)
	assert.Equal(t, []string{tabProducts}, tabs)

	_, err = profileTabs("orders")
	assert.Error(t, err)
}

func TestRenderUser(t *testing.T) {
	user := &model.User{Username: "otieno", Email: "o@example.com", UserType: model.UserBusiness}
	out := renderUser(user)
	assert.Contains(t, out, "o@example.com")
	assert.NotContains(t, out, "Located:")

	user.Location = &westlands
	assert.Contains(t, renderUser(user), "-1.2676, 36.8108")
}

func TestExplainError(t *testing.T) {
	rejected := fmt.Errorf("failed to create service: %w",
		&api.APIError{Method: "POST", Path: "/services/", StatusCode: http.StatusUnauthorized})

	err := explainError(rejected)
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Equal(t, loginFirst, common.UserMessage(err, ""))

	forbidden := &api.APIError{Method: "PATCH", Path: "/services/3/verify/", StatusCode: http.StatusForbidden}
	err = explainError(forbidden)
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Equal(t, "Your account is not allowed to do that.", common.UserMessage(err, ""))

	notFound := &api.APIError{Method: "GET", Path: "/services/9/", StatusCode: http.StatusNotFound}
	assert.Same(t, error(notFound), explainError(notFound))

	worded := common.NewUserError("Invalid credentials", &api.APIError{StatusCode: http.StatusUnauthorized})
	assert.Equal(t, "Invalid credentials", common.UserMessage(explainError(worded), ""))
}

func testServices() []model.Service {
	return []model.Service{
		{ID: 1, Title: "Arduino Repair", Description: "fix boards", HourlyRate: model.NewAmount(500), Location: &westlands},
		{ID: 2, Title: "Phone Screen Replacement", Description: "all models", FixedPrice: model.NewAmount(3000), Location: &westlands},
	}
}

func testPage(source *api.MockCollection[model.Service, model.ServiceInput]) *browse.Page[model.Service] {
	resolver := geo.NewResolver(geo.StaticLocator{Coordinate: westlands}, nil)
	return browse.NewPage[model.Service](model.KindService, source, &api.MockCategories{}, resolver)
}

func TestWritePage(t *testing.T) {
	source := api.NewMockCollection[model.Service, model.ServiceInput](testServices()...)
	var out bytes.Buffer

	err := writePage(context.Background(), &out, testPage(source), listOptions{search: "arduino"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Showing services near: -1.2676, 36.8108 (1 of 2)")
	assert.Contains(t, text, "Arduino Repair")
	assert.NotContains(t, text, "Phone Screen Replacement")

	calls := source.RecordedNearbyCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, westlands, calls[0].Center)
	assert.InDelta(t, float64(browse.DefaultServiceRadiusKm), calls[0].RadiusKm, 0.001)
}

func TestWritePage_Expand(t *testing.T) {
	source := api.NewMockCollection[model.Service, model.ServiceInput](testServices()...)
	var out bytes.Buffer

	require.NoError(t, writePage(context.Background(), &out, testPage(source), listOptions{expand: true}))

	calls := source.RecordedNearbyCalls()
	require.Len(t, calls, 2)
	assert.InDelta(t, float64(browse.DefaultExpandedRadiusKm), calls[1].RadiusKm, 0.001)
	assert.Contains(t, out.String(), "(2 of 2)")
}

func TestWritePage_Empty(t *testing.T) {
	source := api.NewMockCollection[model.Service, model.ServiceInput](testServices()...)
	var out bytes.Buffer

	err := writePage(context.Background(), &out, testPage(source), listOptions{price: "10000-999999"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), browse.EmptyMessage(model.KindService))
}

func TestWritePage_LoadFailure(t *testing.T) {
	source := api.NewMockCollection[model.Service, model.ServiceInput]()
	source.NearbyFn = func(context.Context, model.Coordinate, float64) ([]model.Service, error) {
		return nil, common.ErrLoadFailed
	}
	var out bytes.Buffer

	err := writePage(context.Background(), &out, testPage(source), listOptions{})
	assert.ErrorIs(t, err, common.ErrLoadFailed)
}

func TestSubmitForm(t *testing.T) {
	writer := api.NewMockCollection[model.Service, model.ServiceInput]()
	writer.CreateFn = func(_ context.Context, in model.ServiceInput) (*model.Service, error) {
		return &model.Service{ID: 7, Title: in.Title, Description: in.Description}, nil
	}
	assistant := &api.MockAssistant{
		EnhanceTextFn: func(context.Context, string) (string, error) {
			return "Expert Arduino board repair", nil
		},
	}

	f := form.NewServiceForm(writer, assistant)
	f.Draft().Title = "Arduino Repair"
	f.Draft().Description = "fix boards"
	f.Draft().Price = 500
	f.Draft().Location = &westlands

	var out bytes.Buffer
	require.NoError(t, saveAndReport(context.Background(), &out, f, submitOptions{enhance: true}))

	require.Len(t, writer.CreateCalls, 1)
	assert.Equal(t, "Expert Arduino board repair", writer.CreateCalls[0].Description)
	assert.Contains(t, out.String(), "Description enhanced")
	assert.Contains(t, out.String(), "Created service #7: Arduino Repair")
}

func TestSubmitForm_EnhanceFailureStillSubmits(t *testing.T) {
	writer := api.NewMockCollection[model.Service, model.ServiceInput]()
	assistant := &api.MockAssistant{
		EnhanceTextFn: func(context.Context, string) (string, error) {
			return "", errors.New("assistant unavailable")
		},
	}

	f := form.NewServiceForm(writer, assistant)
	f.Draft().Title = "Arduino Repair"
	f.Draft().Description = "fix boards"
	f.Draft().Location = &westlands

	var out bytes.Buffer
	_, err := submitForm(context.Background(), &out, f, submitOptions{enhance: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), form.MsgEnhanceFailed)
	require.Len(t, writer.CreateCalls, 1)
	assert.Equal(t, "fix boards", writer.CreateCalls[0].Description)
}

func TestSubmitForm_Failure(t *testing.T) {
	writer := api.NewMockCollection[model.Service, model.ServiceInput]()
	writer.CreateFn = func(context.Context, model.ServiceInput) (*model.Service, error) {
		return nil, common.ErrSaveFailed
	}

	f := form.NewServiceForm(writer, nil)
	f.Draft().Title = "Arduino Repair"
	f.Draft().Location = &westlands

	_, err := submitForm(context.Background(), &bytes.Buffer{}, f, submitOptions{})
	require.ErrorIs(t, err, common.ErrSaveFailed)
	assert.Equal(t, "Failed to save service. Please try again.", common.UserMessage(err, ""))
	assert.Equal(t, "Arduino Repair", f.Draft().Title, "draft is kept for a retry")
}

func TestSubmitForm_NoLocation(t *testing.T) {
	writer := api.NewMockCollection[model.Product, model.ProductInput]()
	f := form.NewProductForm(writer, nil)
	f.Draft().Name = "ESP32 DevKit"

	_, err := submitForm(context.Background(), &bytes.Buffer{}, f, submitOptions{})
	require.ErrorIs(t, err, common.ErrLocationRequired)
	assert.Equal(t, form.MsgLocationRequired, common.UserMessage(err, ""))
	assert.Empty(t, writer.CreateCalls)
}

func newFormCmd(t *testing.T, input string, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addFormFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	cmd.SetContext(context.Background())
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&bytes.Buffer{})
	return cmd
}

func TestFillServiceDraft_Flags(t *testing.T) {
	cmd := newFormCmd(t, "",
		"--no-input", "--name", "Soldering", "--pricing", "fixed", "--price", "1200",
		"--category", "4", "--near", "-1.2676,36.8108")
	resolver := geo.NewResolver(geo.StaticLocator{Coordinate: geo.Fallback}, nil)

	d := form.NewServiceDraft()
	require.NoError(t, fillServiceDraft(newFieldReader(cmd, resolver), d))

	assert.Equal(t, "Soldering", d.Title)
	assert.Equal(t, form.PricingFixed, d.Pricing)
	assert.InDelta(t, 1200.0, d.Price, 0.001)
	assert.Equal(t, 4, d.CategoryID)
	assert.InDelta(t, float64(form.DefaultServiceAreaKm), d.AreaKm, 0.001)
	require.NotNil(t, d.Location)
	assert.Equal(t, westlands, *d.Location)
}

func TestFillServiceDraft_NoInputLeavesLocationUnset(t *testing.T) {
	cmd := newFormCmd(t, "", "--no-input", "--name", "Soldering")
	resolver := geo.NewResolver(geo.StaticLocator{Coordinate: westlands}, nil)

	d := form.NewServiceDraft()
	require.NoError(t, fillServiceDraft(newFieldReader(cmd, resolver), d))
	assert.Nil(t, d.Location)
}

func TestFillServiceDraft_Here(t *testing.T) {
	cmd := newFormCmd(t, "", "--no-input", "--name", "Soldering", "--here")
	resolver := geo.NewResolver(geo.StaticLocator{Coordinate: westlands}, nil)

	d := form.NewServiceDraft()
	require.NoError(t, fillServiceDraft(newFieldReader(cmd, resolver), d))
	require.NotNil(t, d.Location)
	assert.Equal(t, westlands, *d.Location)
}

func TestFillServiceDraft_Prompts(t *testing.T) {
	// title, description, category, pricing, price, area, use location
	input := "Arduino Repair\nfix boards\n\nfixed\n1,500\n\ny\n"
	cmd := newFormCmd(t, input)
	resolver := geo.NewResolver(geo.StaticLocator{Coordinate: westlands}, nil)

	d := form.NewServiceDraft()
	require.NoError(t, fillServiceDraft(newFieldReader(cmd, resolver), d))

	assert.Equal(t, "Arduino Repair", d.Title)
	assert.Equal(t, "fix boards", d.Description)
	assert.Equal(t, 0, d.CategoryID)
	assert.Equal(t, form.PricingFixed, d.Pricing)
	assert.InDelta(t, 1500.0, d.Price, 0.001)
	assert.InDelta(t, float64(form.DefaultServiceAreaKm), d.AreaKm, 0.001)
	require.NotNil(t, d.Location)
	assert.Equal(t, westlands, *d.Location)
}

func TestFillProductDraft_Flags(t *testing.T) {
	cmd := newFormCmd(t, "",
		"--no-input", "--name", "ESP32 DevKit", "--price", "1500",
		"--condition", "refurb", "--stock", "3", "--lat", "-1.2676", "--lng", "36.8108")

	d := form.NewProductDraft()
	require.NoError(t, fillProductDraft(newFieldReader(cmd, nil), d))

	assert.Equal(t, "ESP32 DevKit", d.Name)
	assert.Equal(t, model.ConditionRefurbished, d.Condition)
	assert.Equal(t, 3, d.Stock)
	require.NotNil(t, d.Location)
	assert.Equal(t, westlands, *d.Location)
}

func TestFillProductDraft_BadCondition(t *testing.T) {
	cmd := newFormCmd(t, "", "--no-input", "--name", "ESP32", "--condition", "broken")

	err := fillProductDraft(newFieldReader(cmd, nil), form.NewProductDraft())
	assert.Error(t, err)
}

func TestFillBusinessDraft_KeepsExistingValues(t *testing.T) {
	cmd := newFormCmd(t, "", "--no-input", "--phone", "+254700000000")

	d := form.BusinessDraftFrom(model.Business{
		Name:     "Nairobi Circuits",
		Address:  "Luthuli Avenue",
		Location: &westlands,
	})
	require.NoError(t, fillBusinessDraft(newFieldReader(cmd, nil), d))

	assert.Equal(t, "Nairobi Circuits", d.Name)
	assert.Equal(t, "Luthuli Avenue", d.Address)
	assert.Equal(t, "+254700000000", d.ContactPhone)
	assert.Equal(t, westlands, *d.Location)
}
