package bundle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/adminctl/internal/core/i18n"
	"github.com/colonyops/adminctl/internal/core/ui"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	bundles []Bundle
	err     error

	// during is called while an action request is outstanding.
	during func()

	uninstalled []int64
}

func (f *fakeAPI) Bundles(context.Context) ([]Bundle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]Bundle(nil), f.bundles...), nil
}

func (f *fakeAPI) Bundle(_ context.Context, id int64) (Bundle, error) {
	if f.err != nil {
		return Bundle{}, f.err
	}
	for _, b := range f.bundles {
		if b.ID == id {
			return b, nil
		}
	}
	return Bundle{}, ErrNotFound
}

func (f *fakeAPI) action(id int64, state State) (Bundle, error) {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return Bundle{}, f.err
	}
	for i := range f.bundles {
		if f.bundles[i].ID == id {
			f.bundles[i].State = state
			return f.bundles[i], nil
		}
	}
	return Bundle{}, ErrNotFound
}

func (f *fakeAPI) StartBundle(_ context.Context, id int64) (Bundle, error) {
	return f.action(id, StateActive)
}

func (f *fakeAPI) StopBundle(_ context.Context, id int64) (Bundle, error) {
	return f.action(id, StateResolved)
}

func (f *fakeAPI) RestartBundle(_ context.Context, id int64) (Bundle, error) {
	return f.action(id, StateActive)
}

func (f *fakeAPI) UninstallBundle(_ context.Context, id int64) error {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return f.err
	}
	f.uninstalled = append(f.uninstalled, id)
	return nil
}

type recordedAlert struct {
	key   string
	level ui.Level
}

type alertRecorder struct {
	alerts []recordedAlert
}

func (r *alertRecorder) Alert(key string, level ui.Level) {
	r.alerts = append(r.alerts, recordedAlert{key: key, level: level})
}

func testBundles() []Bundle {
	return []Bundle{
		{ID: 1, Name: "Core", SymbolicName: "org.platform.core", Version: "1.0.0", State: StateActive},
		{ID: 7, Name: "Mail", SymbolicName: "org.platform.mail", Version: "2.3.1", State: StateResolved},
		{ID: 9, Name: "Search", SymbolicName: "com.acme.search", Version: "0.9.0", State: StateInstalled},
	}
}

func newTestController(t *testing.T, api *fakeAPI, forms ui.FormSubmitter) (*Controller, *alertRecorder) {
	t.Helper()
	alerts := &alertRecorder{}
	c := NewController(api, alerts, forms, i18n.Default())
	require.NoError(t, c.Load(context.Background()))
	return c, alerts
}

func TestController_Load(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, _ := newTestController(t, api, nil)

	assert.Len(t, c.Bundles(""), 3)

	api.err = errBoom
	assert.ErrorIs(t, c.Load(context.Background()), errBoom)
	assert.Len(t, c.Bundles(""), 3, "failed load keeps the previous list")
}

func TestController_Bundles_match(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{bundles: testBundles()}, nil)

	tests := []struct {
		pattern string
		want    []int64
	}{
		{"", []int64{1, 7, 9}},
		{"org.platform.*", []int64{1, 7}},
		{"*search*", []int64{9}},
		{"MAIL", []int64{7}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			var got []int64
			for _, b := range c.Bundles(tt.pattern) {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestController_Start(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)

	var during State
	api.during = func() {
		b, _ := c.Find(7)
		during = b.State
	}

	require.NoError(t, c.Start(context.Background(), 7))

	assert.Equal(t, StateLoading, during, "bundle shows loading while the request is outstanding")
	b, _ := c.Find(7)
	assert.Equal(t, StateActive, b.State)
	assert.Empty(t, alerts.alerts)
}

func TestController_Start_failure(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)
	api.err = errBoom

	err := c.Start(context.Background(), 9)
	require.ErrorIs(t, err, errBoom)

	b, _ := c.Find(9)
	assert.Equal(t, StateResolved, b.State, "failed start falls back to resolved")
	assert.Equal(t, []recordedAlert{{AlertStartFailed, ui.LevelError}}, alerts.alerts)
}

func TestController_Restart_failure(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)
	api.err = errBoom

	require.Error(t, c.Restart(context.Background(), 1))

	b, _ := c.Find(1)
	assert.Equal(t, StateResolved, b.State)
	assert.Equal(t, []recordedAlert{{AlertRestartFailed, ui.LevelError}}, alerts.alerts)
}

func TestController_Stop(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)

	var during State
	api.during = func() {
		b, _ := c.Find(1)
		during = b.State
	}

	require.NoError(t, c.Stop(context.Background(), 1))

	assert.Equal(t, StateActive, during, "stop does not show a loading state")
	b, _ := c.Find(1)
	assert.Equal(t, StateResolved, b.State)
	assert.Empty(t, alerts.alerts)
}

func TestController_Stop_failure(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)
	api.err = errBoom

	require.ErrorIs(t, c.Stop(context.Background(), 1), errBoom)

	b, _ := c.Find(1)
	assert.Equal(t, StateActive, b.State)
	assert.Equal(t, []recordedAlert{{AlertStopFailed, ui.LevelError}}, alerts.alerts)
}

func TestController_unknownBundle(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)
	ctx := context.Background()

	assert.ErrorIs(t, c.Start(ctx, 404), ErrNotFound)
	assert.ErrorIs(t, c.Stop(ctx, 404), ErrNotFound)
	assert.ErrorIs(t, c.Uninstall(ctx, 404, ui.Answer(true)), ErrNotFound)
	assert.Empty(t, alerts.alerts)
}

func TestController_Uninstall(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)

	var gotMessage, gotTitle string
	prompt := ui.ConfirmFunc(func(_ context.Context, message, title string) (bool, error) {
		gotMessage, gotTitle = message, title
		return true, nil
	})

	require.NoError(t, c.Uninstall(context.Background(), 7, prompt))

	assert.Equal(t, "Are you sure you want to uninstall this module?", gotMessage)
	assert.Equal(t, "Confirm", gotTitle)
	assert.Equal(t, []int64{7}, api.uninstalled)
	_, found := c.Find(7)
	assert.False(t, found)
	assert.Len(t, c.Bundles(""), 2)
	assert.Empty(t, alerts.alerts)
}

func TestController_Uninstall_declined(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)

	require.NoError(t, c.Uninstall(context.Background(), 7, ui.Answer(false)))

	assert.Empty(t, api.uninstalled)
	b, found := c.Find(7)
	require.True(t, found)
	assert.Equal(t, StateResolved, b.State)
	assert.Empty(t, alerts.alerts)
}

func TestController_Uninstall_promptError(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, _ := newTestController(t, api, nil)

	prompt := ui.ConfirmFunc(func(context.Context, string, string) (bool, error) {
		return false, errBoom
	})

	require.ErrorIs(t, c.Uninstall(context.Background(), 7, prompt), errBoom)
	assert.Empty(t, api.uninstalled)
}

func TestController_Uninstall_failure(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, alerts := newTestController(t, api, nil)

	var during State
	api.during = func() {
		b, _ := c.Find(1)
		during = b.State
	}
	api.err = errBoom

	require.ErrorIs(t, c.Uninstall(context.Background(), 1, ui.Answer(true)), errBoom)

	assert.Equal(t, StateLoading, during)
	b, found := c.Find(1)
	require.True(t, found)
	assert.Equal(t, StateActive, b.State, "previous state is restored")
	assert.Equal(t, []recordedAlert{{AlertUninstallFailed, ui.LevelError}}, alerts.alerts)
}

func TestController_Upload(t *testing.T) {
	var got ui.Form
	forms := ui.SubmitFunc(func(_ context.Context, form ui.Form) ([]byte, error) {
		got = form
		return []byte(`{"bundleId":12,"name":"Reports","symbolicName":"org.platform.reports","version":"1.1.0","state":"ACTIVE"}`), nil
	})

	c, alerts := newTestController(t, &fakeAPI{bundles: testBundles()}, forms)

	b, err := c.Upload(context.Background(), "/tmp/reports.jar", true)
	require.NoError(t, err)

	assert.Equal(t, UploadAction, got.Action)
	assert.Equal(t, map[string]string{"startBundle": "true"}, got.Fields)
	assert.Equal(t, []ui.FormFile{{Field: "bundleFile", Path: "/tmp/reports.jar"}}, got.Files)

	assert.Equal(t, int64(12), b.ID)
	listed, found := c.Find(12)
	require.True(t, found)
	assert.Equal(t, StateActive, listed.State)
	assert.Empty(t, alerts.alerts)
}

func TestController_Upload_failure(t *testing.T) {
	tests := []struct {
		name  string
		forms ui.SubmitFunc
	}{
		{
			name: "submit error",
			forms: func(context.Context, ui.Form) ([]byte, error) {
				return nil, errBoom
			},
		},
		{
			name: "bad response",
			forms: func(context.Context, ui.Form) ([]byte, error) {
				return []byte("<html>"), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, alerts := newTestController(t, &fakeAPI{bundles: testBundles()}, tt.forms)

			_, err := c.Upload(context.Background(), "x.jar", false)
			require.Error(t, err)

			assert.Len(t, c.Bundles(""), 3)
			assert.Equal(t, []recordedAlert{{AlertUploadFailed, ui.LevelError}}, alerts.alerts)
		})
	}
}

func TestController_Get(t *testing.T) {
	api := &fakeAPI{bundles: testBundles()}
	c, _ := newTestController(t, api, nil)

	api.bundles[0].Version = "1.0.1"
	b, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "1.0.1", b.Version)

	listed, _ := c.Find(1)
	assert.Equal(t, "1.0.1", listed.Version)
}
